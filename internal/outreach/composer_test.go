package outreach

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"leadreach_backend/platform/logger"
)

func newTestComposer(seed int64) *Composer {
	return NewComposer(rand.New(rand.NewSource(seed)), logger.New("development"))
}

func TestSubject(t *testing.T) {
	got := Subject("Acme Property Group", "Austin")
	expected := "Property Management Solutions for Acme Property Group in Austin"
	if got != expected {
		t.Fatalf("expected subject %q, got %q", expected, got)
	}
}

func TestComposeTemplatePersonalization(t *testing.T) {
	composer := newTestComposer(1)

	for i := 0; i < 50; i++ {
		msg := composer.ComposeTemplate("Sarah", "Acme Property Group", "Austin",
			"clear sky", "high rental market, affluent area, temperate climate")

		if msg.Body == "" {
			t.Fatalf("expected non-empty body on draw %d", i)
		}
		if !strings.Contains(msg.Body, "Sarah") {
			t.Fatalf("expected body to contain lead name on draw %d:\n%s", i, msg.Body)
		}
		if !strings.Contains(msg.Body, "Austin") {
			t.Fatalf("expected body to contain city on draw %d:\n%s", i, msg.Body)
		}
		if msg.Source != SourceTemplate {
			t.Fatalf("expected template source, got %q", msg.Source)
		}
	}
}

func TestComposeTemplateSectionOrder(t *testing.T) {
	composer := newTestComposer(7)

	msg := composer.ComposeTemplate("Sarah", "Acme", "Austin",
		"clear sky", "high rental market, affluent area, temperate climate")

	sections := strings.Split(msg.Body, "\n\n")
	if len(sections) != 6 {
		t.Fatalf("expected 6 sections, got %d:\n%s", len(sections), msg.Body)
	}

	if !strings.Contains(sections[0], "Sarah,") {
		t.Fatalf("expected greeting first, got %q", sections[0])
	}
	if !strings.Contains(sections[1], "beautiful sunny weather") || !strings.Contains(sections[1], "Austin") {
		t.Fatalf("expected weather opening second, got %q", sections[1])
	}
	if !strings.Contains(sections[2], "high rental market") {
		t.Fatalf("expected insight sentence third, got %q", sections[2])
	}
	if !strings.Contains(sections[5], "[Your Name]") {
		t.Fatalf("expected closing signature last, got %q", sections[5])
	}
}

func TestComposeTemplateSeededDeterminism(t *testing.T) {
	first := newTestComposer(42).ComposeTemplate("Sarah", "Acme", "Austin",
		"light rain", "moderate rental market, middle-income area, temperate climate")
	second := newTestComposer(42).ComposeTemplate("Sarah", "Acme", "Austin",
		"light rain", "moderate rental market, middle-income area, temperate climate")

	if first.Body != second.Body {
		t.Fatalf("expected identical bodies for identical seeds:\n%q\nvs\n%q", first.Body, second.Body)
	}
}

func TestComposeTemplateInsightKeyPriority(t *testing.T) {
	composer := newTestComposer(3)

	// Both rental and income keys are present; the rental key comes first
	// in the bank, so the sentence must be a rental one.
	msg := composer.ComposeTemplate("Sarah", "Acme", "Austin",
		"clear sky", "high rental market, affluent area, temperate climate")
	if !strings.Contains(msg.Body, "high rental market") {
		t.Fatalf("expected a high rental market sentence:\n%s", msg.Body)
	}

	// Only the income key matches once rental keys are absent.
	msg = composer.ComposeTemplate("Sarah", "Acme", "Austin",
		"clear sky", "affluent area, temperate climate")
	if !strings.Contains(msg.Body, "affluent") {
		t.Fatalf("expected an affluent area sentence:\n%s", msg.Body)
	}
}

func TestComposeTemplateGenericFallbackSentence(t *testing.T) {
	composer := newTestComposer(9)

	msg := composer.ComposeTemplate("Sarah", "Acme", "Austin", "clear sky", "warm climate")
	if !strings.Contains(msg.Body, "Acme manages properties in Austin") {
		t.Fatalf("expected generic insight sentence:\n%s", msg.Body)
	}
}

func TestAlternativesCount(t *testing.T) {
	composer := newTestComposer(11)

	drafts := composer.Alternatives("Sarah", "Acme", "Austin", "clear sky",
		"high rental market, affluent area, temperate climate", 0)
	if len(drafts) != 3 {
		t.Fatalf("expected default of 3 drafts, got %d", len(drafts))
	}

	drafts = composer.Alternatives("Sarah", "Acme", "Austin", "clear sky",
		"high rental market, affluent area, temperate climate", 5)
	if len(drafts) != 5 {
		t.Fatalf("expected 5 drafts, got %d", len(drafts))
	}
	for _, draft := range drafts {
		if !strings.Contains(draft.Body, "Sarah") {
			t.Fatalf("expected every draft personalized:\n%s", draft.Body)
		}
	}
}

type stubGenerator struct {
	body string
	err  error
}

func (s stubGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	return s.body, s.err
}

func TestComposeAISuccess(t *testing.T) {
	composer := newTestComposer(5)

	msg := composer.ComposeAI(context.Background(), stubGenerator{body: "Hi Sarah, Acme ..."}, LeadContext{
		Name: "Sarah", Company: "Acme", City: "Austin", State: "TX",
		WeatherDescription: "clear sky", Temperature: 70,
		MedianIncome: 85000, PercentRenters: 65, Population: 950000,
		Insights: "high rental market, affluent area, temperate climate",
	})

	if msg.Source != SourceAI {
		t.Fatalf("expected ai source, got %q", msg.Source)
	}
	if msg.Body != "Hi Sarah, Acme ..." {
		t.Fatalf("unexpected body %q", msg.Body)
	}
	if msg.Subject != Subject("Acme", "Austin") {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
}

func TestComposeAIFallbackOnError(t *testing.T) {
	composer := newTestComposer(5)
	lead := LeadContext{
		Name: "Sarah", Company: "Acme", City: "Austin", State: "TX",
		WeatherDescription: "clear sky", Temperature: 70,
		MedianIncome: 85000, PercentRenters: 65, Population: 950000,
		Insights: "high rental market, affluent area, temperate climate",
	}

	msg := composer.ComposeAI(context.Background(), stubGenerator{err: errors.New("timeout")}, lead)

	if msg.Source != SourceTemplate {
		t.Fatalf("expected template fallback, got source %q", msg.Source)
	}
	if msg.Body == "" || !strings.Contains(msg.Body, "Sarah") || !strings.Contains(msg.Body, "Acme") {
		t.Fatalf("expected personalized fallback body:\n%s", msg.Body)
	}
}

func TestComposeAIFallbackOnEmptyResponse(t *testing.T) {
	composer := newTestComposer(5)

	msg := composer.ComposeAI(context.Background(), stubGenerator{body: "   "}, LeadContext{
		Name: "Sarah", Company: "Acme", City: "Austin",
		WeatherDescription: "clear sky",
		Insights:           "high rental market, affluent area, temperate climate",
	})

	if msg.Source != SourceTemplate {
		t.Fatalf("expected template fallback for empty response, got %q", msg.Source)
	}
}

func TestComposeAIFallbackWithNilGenerator(t *testing.T) {
	composer := newTestComposer(5)

	msg := composer.ComposeAI(context.Background(), nil, LeadContext{
		Name: "Sarah", Company: "Acme", City: "Austin",
		WeatherDescription: "clear sky",
		Insights:           "high rental market, affluent area, temperate climate",
	})

	if msg.Source != SourceTemplate {
		t.Fatalf("expected template fallback without generator, got %q", msg.Source)
	}
}

func TestBuildGeneratorPrompt(t *testing.T) {
	prompt := buildGeneratorPrompt(LeadContext{
		Name: "Sarah", Company: "Acme", City: "Austin", State: "TX",
		WeatherDescription: "clear sky", Temperature: 70,
		MedianIncome: 85000, PercentRenters: 65, Population: 950000,
		Insights: "high rental market, affluent area, temperate climate",
	})

	for _, fragment := range []string{
		"- Name: Sarah",
		"- Company: Acme",
		"- Location: Austin, TX",
		"- Current Weather: clear sky (70°F)",
		"950,000 population",
		"$85,000 median income",
		"65.0% renters",
		"- Market Insights: high rental market, affluent area, temperate climate",
		"LENGTH: 150-250 words",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("expected prompt to contain %q:\n%s", fragment, prompt)
		}
	}
}
