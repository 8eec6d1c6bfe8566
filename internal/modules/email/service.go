// Package email renders the transactional mails the storefront sends.
package email

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"mahirash.com/app/internal/modules/orders"
	"mahirash.com/app/pkg/view"
)

type Message struct {
	Subject string
	Text    string
	HTML    string
}

var confirmationText = texttemplate.Must(texttemplate.New("confirmation.txt").Parse(
	`Hello {{.Customer}},

Thank you for your order #{{.Ref}}.

{{range .Items}}{{.Quantity}} x {{.Brand}} {{.Name}} ({{.Size}})  {{.LineTotal}}
{{end}}
Total: {{.TotalLabel}}

Shipping to:
{{.Address}}

Mahirash
`))

var confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation.html").Parse(`<html>
  <body style="font-family: sans-serif;">
    <h2>Order confirmed</h2>
    <p>Hello {{.Customer}},</p>
    <p>Thank you for your order <strong>#{{.Ref}}</strong>.</p>
    <table cellpadding="4">
      {{range .Items}}<tr><td>{{.Quantity}} &times;</td><td>{{.Brand}} {{.Name}} ({{.Size}})</td><td align="right">{{.LineTotal}}</td></tr>
      {{end}}<tr><td></td><td><strong>Total</strong></td><td align="right"><strong>{{.TotalLabel}}</strong></td></tr>
    </table>
    <p>Shipping to:<br>{{.Address}}</p>
    <p>Mahirash</p>
  </body>
</html>
`))

type confirmation struct {
	view.Order
	Ref string
}

// OrderConfirmation renders the mail sent after checkout.
func OrderConfirmation(o orders.Order, currency string) (Message, error) {
	data := confirmation{Order: view.NewOrder(o, currency), Ref: ShortRef(o.ID)}

	var text, html bytes.Buffer
	if err := confirmationText.Execute(&text, data); err != nil {
		return Message{}, err
	}
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return Message{}, err
	}
	return Message{
		Subject: "Order #" + data.Ref + " confirmed",
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

// ShortRef is the customer-facing order reference.
func ShortRef(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
