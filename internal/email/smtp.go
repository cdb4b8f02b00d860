package email

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"leadreach_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// ErrNotConfigured indicates SMTP delivery was requested without credentials.
var ErrNotConfigured = errors.New("email delivery not configured")

// SMTPSender delivers outreach emails over the configured SMTP server.
// Messages carry a plain-text part plus the styled HTML template.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a sender from the email configuration. Returns
// ErrNotConfigured when SMTP delivery is disabled.
func NewSMTPSender(cfg config.EmailConfig) (*SMTPSender, error) {
	if !cfg.IsEmailEnabled() {
		return nil, ErrNotConfigured
	}
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetSenderName(),
		fromEmail: cfg.GetSenderEmail(),
	}, nil
}

// SendOutreach delivers a composed outreach message to the recipient.
func (s *SMTPSender) SendOutreach(ctx context.Context, to, toName, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.AddToFormat(toName, to); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)

	msg.SetBodyString(gomail.TypeTextPlain, body+plainTextFooter(to))

	htmlContent, err := renderOutreachEmail(body, to, s.fromName)
	if err != nil {
		return err
	}
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// ComposeLinks builds webmail and mailto links for manual sending.
func (s *SMTPSender) ComposeLinks(to, subject, body string) map[string]string {
	return map[string]string{
		"gmail":  GmailComposeURL(to, subject, body),
		"mailto": MailtoURL(to, subject, body),
	}
}
