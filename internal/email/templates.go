// Package email delivers outreach messages over SMTP and builds
// pre-composed webmail links.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

type outreachEmailData struct {
	BodyHTML   template.HTML
	Recipient  string
	SenderName string
	Year       int
}

func renderOutreachEmail(body, recipient, senderName string) (string, error) {
	tmpl, err := template.New("outreach.html").ParseFS(templateFS, "templates/outreach.html")
	if err != nil {
		return "", fmt.Errorf("parse email template: %w", err)
	}

	data := outreachEmailData{
		BodyHTML:   bodyToHTML(body),
		Recipient:  recipient,
		SenderName: senderName,
		Year:       time.Now().Year(),
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template: %w", err)
	}
	return buf.String(), nil
}

// bodyToHTML escapes the plain-text message and converts newlines to breaks.
func bodyToHTML(body string) template.HTML {
	escaped := template.HTMLEscapeString(body)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// plainTextFooter is appended to the text alternative of every outreach email.
func plainTextFooter(recipient string) string {
	return fmt.Sprintf(`

---
This email was sent to %s because your company was identified as a high-potential lead for our property management services.
If you'd prefer not to receive these emails, please reply with "UNSUBSCRIBE" and we'll remove you from our list.
`, recipient)
}
