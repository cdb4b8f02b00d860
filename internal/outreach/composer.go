// Package outreach composes personalized outreach messages for enriched
// leads. The template path is self-contained and cannot fail; the AI path
// delegates to an external generator and falls back to the template path on
// any failure.
package outreach

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"leadreach_backend/platform/logger"
)

// Message sources.
const (
	SourceTemplate = "template"
	SourceAI       = "ai"
)

// Message is a ready-to-send outreach subject and body.
type Message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Source  string `json:"source"`
}

// Composer assembles outreach messages. The random source is injected so
// callers can fix the seed; a time-based seed is the usual production choice.
type Composer struct {
	mu  sync.Mutex
	rng *rand.Rand
	log *logger.Logger
}

// NewComposer creates a composer drawing template variants from rng.
func NewComposer(rng *rand.Rand, log *logger.Logger) *Composer {
	return &Composer{rng: rng, log: log}
}

// Subject builds the standard outreach subject line for a lead.
func Subject(company, city string) string {
	return fmt.Sprintf("Property Management Solutions for %s in %s", company, city)
}

// ComposeTemplate builds an outreach message from the template banks. The
// body is greeting, weather opening, insight sentence, value proposition,
// call to action and closing, in that order, blank-line separated.
func (c *Composer) ComposeTemplate(name, company, city, weatherDescription, insights string) Message {
	weather := NormalizeWeather(weatherDescription)

	replacer := strings.NewReplacer(
		"{name}", name,
		"{company}", company,
		"{city}", city,
		"{weather}", weather,
	)

	c.mu.Lock()
	greeting := greetings[c.rng.Intn(len(greetings))]
	opening := weatherOpenings[c.rng.Intn(len(weatherOpenings))]
	insightSentence := c.pickInsightSentence(insights)
	valueProp := valueProps[c.rng.Intn(len(valueProps))]
	cta := callsToAction[c.rng.Intn(len(callsToAction))]
	closing := closings[c.rng.Intn(len(closings))]
	c.mu.Unlock()

	sections := []string{greeting, opening, insightSentence, valueProp, cta, closing}
	body := replacer.Replace(strings.Join(sections, "\n\n"))

	return Message{
		Subject: Subject(company, city),
		Body:    body,
		Source:  SourceTemplate,
	}
}

// Alternatives produces count independent template drafts for the same lead.
func (c *Composer) Alternatives(name, company, city, weatherDescription, insights string, count int) []Message {
	if count <= 0 {
		count = 3
	}

	messages := make([]Message, 0, count)
	for i := 0; i < count; i++ {
		messages = append(messages, c.ComposeTemplate(name, company, city, weatherDescription, insights))
	}
	return messages
}

// pickInsightSentence scans the insight bank in order and returns a variant
// for the first key present in the joined insight string. Caller holds c.mu.
func (c *Composer) pickInsightSentence(insights string) string {
	lowered := strings.ToLower(insights)
	for _, entry := range insightBank {
		if strings.Contains(lowered, entry.key) {
			return entry.options[c.rng.Intn(len(entry.options))]
		}
	}
	return genericInsightSentence
}
