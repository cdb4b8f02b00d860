package email

import (
	"fmt"
	"net/url"
)

// GmailComposeURL returns a Gmail web compose link pre-filled with the
// recipient, subject and body.
func GmailComposeURL(to, subject, body string) string {
	return fmt.Sprintf("https://mail.google.com/mail/?view=cm&fs=1&to=%s&su=%s&body=%s",
		url.QueryEscape(to), url.QueryEscape(subject), url.QueryEscape(body+plainTextFooter(to)))
}

// MailtoURL returns a mailto link for the default mail client.
func MailtoURL(to, subject, body string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		to, url.QueryEscape(subject), url.QueryEscape(body+plainTextFooter(to)))
}
