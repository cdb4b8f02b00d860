package outreach

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Generator is the external text-generation delegate. Implementations get a
// single attempt per message; retry policy belongs to neither side.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// LeadContext carries the lead fields embedded in the generation prompt.
type LeadContext struct {
	Name               string
	Company            string
	City               string
	State              string
	WeatherDescription string
	Temperature        float64
	MedianIncome       float64
	PercentRenters     float64
	Population         int64
	Insights           string
}

const generatorSystemPrompt = "You are an expert sales representative specializing in property management technology. Write compelling, personalized outreach emails that connect local market conditions to the value proposition."

// generationResult is the internal outcome of one delegate attempt. ComposeAI
// always unwraps it to a usable message.
type generationResult struct {
	body string
	err  error
}

// ComposeAI asks the delegate for a personalized message and falls back to
// the template path on any failure. The caller always receives a usable
// message; delegate failures surface only as a log line and the message
// Source field. The context bounds the single delegate attempt.
func (c *Composer) ComposeAI(ctx context.Context, gen Generator, lead LeadContext) Message {
	result := c.generate(ctx, gen, lead)
	if result.err != nil {
		if c.log != nil {
			c.log.Warn("outreach generation failed, using template fallback",
				"company", lead.Company, "error", result.err.Error())
		}
		return c.ComposeTemplate(lead.Name, lead.Company, lead.City, lead.WeatherDescription, lead.Insights)
	}

	return Message{
		Subject: Subject(lead.Company, lead.City),
		Body:    result.body,
		Source:  SourceAI,
	}
}

func (c *Composer) generate(ctx context.Context, gen Generator, lead LeadContext) generationResult {
	if gen == nil {
		return generationResult{err: fmt.Errorf("no generator configured")}
	}

	body, err := gen.Generate(ctx, generatorSystemPrompt, buildGeneratorPrompt(lead))
	if err != nil {
		return generationResult{err: err}
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return generationResult{err: fmt.Errorf("generator returned empty response")}
	}

	return generationResult{body: body}
}

func buildGeneratorPrompt(lead LeadContext) string {
	return fmt.Sprintf(`You are a sales representative for a property management technology company that helps automate resident communications and streamline operations.

Generate a personalized, professional outreach email for a property management lead with the following details:

LEAD INFORMATION:
- Name: %s
- Company: %s
- Location: %s, %s
- Current Weather: %s (%s°F)
- Area Demographics: %s population, $%s median income, %.1f%% renters
- Market Insights: %s

VALUE PROPOSITIONS:
- Automate resident communications (maintenance requests, announcements, rent reminders)
- Reduce administrative overhead and save time
- Improve resident satisfaction and retention
- Streamline property management operations
- Provide data-driven insights for better decision making
- Scale communication across multiple properties

REQUIREMENTS:
1. Start with a personalized greeting using their name
2. Reference the current weather in their city naturally
3. Connect their local market conditions to the value proposition
4. Mention specific benefits relevant to their demographic profile
5. Include a clear call-to-action for a conversation
6. Keep it professional but conversational (2-3 paragraphs)
7. End with a professional signature placeholder
8. Make it feel personal and relevant to their specific situation

TONE: Professional, helpful, consultative, not pushy
LENGTH: 150-250 words`,
		lead.Name,
		lead.Company,
		lead.City, lead.State,
		lead.WeatherDescription, strconv.FormatFloat(lead.Temperature, 'f', -1, 64),
		commaInt(lead.Population), commaInt(int64(lead.MedianIncome)), lead.PercentRenters,
		lead.Insights,
	)
}

// commaInt renders an integer with thousands separators.
func commaInt(value int64) string {
	digits := strconv.FormatInt(value, 10)

	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}

	var out []byte
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}

	if negative {
		return "-" + string(out)
	}
	return string(out)
}
