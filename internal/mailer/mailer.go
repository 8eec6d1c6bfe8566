package mailer

import (
	"context"
	"errors"
	"log/slog"
)

type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string
	From     string

	To  []string
	Cc  []string
	Bcc []string

	Subject string

	TextBody string
	HTMLBody string

	Headers map[string]string
}

func (e Email) AllRecipients() []string {
	out := make([]string, 0, len(e.To)+len(e.Cc)+len(e.Bcc))
	out = append(out, e.To...)
	out = append(out, e.Cc...)
	out = append(out, e.Bcc...)
	return out
}

func (e Email) Validate() error {
	switch {
	case len(e.To) == 0:
		return errors.New("mailer: at least one recipient required")
	case e.From == "":
		return errors.New("mailer: from address required")
	case e.Subject == "":
		return errors.New("mailer: subject required")
	case e.TextBody == "" && e.HTMLBody == "":
		return errors.New("mailer: text or html body required")
	}
	return nil
}

// Log writes mails to the logger instead of delivering them. Used when no
// SMTP host is configured.
type Log struct{ Logger *slog.Logger }

func (l Log) Send(ctx context.Context, e Email) error {
	if err := e.Validate(); err != nil {
		return err
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "mail_logged",
		slog.Any("to", e.To),
		slog.String("subject", e.Subject),
	)
	return nil
}
