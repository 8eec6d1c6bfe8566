package mailer

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime"
	"sort"
	"strings"
	"time"
)

func formatAddress(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), addr)
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func header(b *strings.Builder, k, v string) {
	fmt.Fprintf(b, "%s: %s\r\n", k, v)
}

func body(b *strings.Builder, contentType, text string) {
	header(b, "Content-Type", contentType+"; charset=UTF-8")
	header(b, "Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\r\n")
	}
}

// buildMessage renders e as an RFC 5322 message. A mail with both bodies is
// sent as multipart/alternative.
func buildMessage(e Email, domain string, now time.Time) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	header(&b, "Date", now.Format(time.RFC1123Z))
	header(&b, "Message-ID", fmt.Sprintf("<%s@%s>", randomHex(12), domain))
	header(&b, "From", formatAddress(e.FromName, e.From))
	header(&b, "To", strings.Join(e.To, ", "))
	if len(e.Cc) > 0 {
		header(&b, "Cc", strings.Join(e.Cc, ", "))
	}
	header(&b, "Subject", mime.QEncoding.Encode("utf-8", e.Subject))
	header(&b, "MIME-Version", "1.0")

	keys := make([]string, 0, len(e.Headers))
	for k, v := range e.Headers {
		if k != "" && v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		header(&b, k, e.Headers[k])
	}

	switch {
	case e.TextBody != "" && e.HTMLBody != "":
		boundary := "alt-" + randomHex(12)
		header(&b, "Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", boundary))
		b.WriteString("\r\n")
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		body(&b, "text/plain", e.TextBody)
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		body(&b, "text/html", e.HTMLBody)
		fmt.Fprintf(&b, "--%s--\r\n", boundary)
	case e.HTMLBody != "":
		body(&b, "text/html", e.HTMLBody)
	default:
		body(&b, "text/plain", e.TextBody)
	}
	return b.String(), nil
}
