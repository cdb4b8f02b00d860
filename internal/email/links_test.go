package email

import (
	"net/url"
	"strings"
	"testing"
)

func TestGmailComposeURL(t *testing.T) {
	link := GmailComposeURL("jane@acme.com", "Property Management Solutions for Acme in Austin", "Hi Jane,\n\nHope all is well.")

	if !strings.HasPrefix(link, "https://mail.google.com/mail/?view=cm&fs=1&to=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}

	q := parsed.Query()
	if q.Get("to") != "jane@acme.com" {
		t.Errorf("to = %q", q.Get("to"))
	}
	if q.Get("su") != "Property Management Solutions for Acme in Austin" {
		t.Errorf("su = %q", q.Get("su"))
	}
	if !strings.Contains(q.Get("body"), "Hi Jane,") {
		t.Errorf("body missing greeting: %q", q.Get("body"))
	}
	if !strings.Contains(q.Get("body"), "UNSUBSCRIBE") {
		t.Error("body missing unsubscribe footer")
	}
}

func TestMailtoURL(t *testing.T) {
	link := MailtoURL("jane@acme.com", "Hello", "Line one\nLine two")

	if !strings.HasPrefix(link, "mailto:jane@acme.com?") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if !strings.Contains(link, "subject=Hello") {
		t.Errorf("missing subject: %s", link)
	}
}

func TestRenderOutreachEmail(t *testing.T) {
	html, err := renderOutreachEmail("Hi Jane,\n\nQuick note about <rentals>.", "jane@acme.com", "Property Solutions Team")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.Contains(html, "Hi Jane,<br><br>") {
		t.Error("newlines should become <br> tags")
	}
	if !strings.Contains(html, "&lt;rentals&gt;") {
		t.Error("message content should be HTML-escaped")
	}
	if !strings.Contains(html, "jane@acme.com") {
		t.Error("footer should name the recipient")
	}
	if !strings.Contains(html, "UNSUBSCRIBE") {
		t.Error("footer should carry the unsubscribe notice")
	}
}
