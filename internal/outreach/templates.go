package outreach

// Template banks for the fallback composer. Placeholders are filled with a
// strings.Replacer; {name}, {company}, {city} and {weather} are the only
// recognized tokens.

var greetings = []string{
	"Hi {name},",
	"Hello {name},",
	"Hi there {name},",
}

var weatherOpenings = []string{
	"Hope you're enjoying the {weather} in {city}!",
	"How's the {weather} treating you in {city}?",
	"Hope the {weather} in {city} is treating you well!",
	"Enjoying the {weather} in {city}?",
}

// insightSentences maps an insight key to its sentence variants. The slice is
// scanned in order against the joined insight string; the first key found
// wins, so keys must stay in this order.
type insightSentences struct {
	key     string
	options []string
}

var insightBank = []insightSentences{
	{
		key: "high rental market",
		options: []string{
			"I noticed {company} manages properties in an area with a high rental market — that's a great opportunity for resident engagement and retention.",
			"With {company} operating in a high rental market area, there's tremendous potential for improving resident satisfaction and reducing turnover.",
			"Managing properties in a high rental market like yours presents unique opportunities for streamlining communications and operations.",
		},
	},
	{
		key: "moderate rental market",
		options: []string{
			"I noticed {company} manages properties in an area with a moderate rental market — there's solid potential for enhancing resident engagement.",
			"With {company} in a moderate rental market, there are good opportunities to differentiate through superior resident communication.",
			"Operating in a moderate rental market gives {company} the chance to stand out with exceptional resident services.",
		},
	},
	{
		key: "low rental market",
		options: []string{
			"I noticed {company} manages properties in an area with a lower rental market — perfect for focusing on quality resident experiences.",
			"With {company} in a lower rental market, there's an opportunity to provide premium resident communication services.",
			"Managing properties in a lower rental market allows {company} to focus on delivering exceptional resident satisfaction.",
		},
	},
	{
		key: "affluent area",
		options: []string{
			"I noticed {company} manages properties in an affluent area — residents likely expect premium communication and service levels.",
			"With {company} serving an affluent community, there's an opportunity to provide sophisticated resident engagement solutions.",
			"Operating in an affluent area means {company} can leverage technology to meet high resident expectations.",
		},
	},
	{
		key: "middle-income area",
		options: []string{
			"I noticed {company} manages properties in a middle-income area — there's great potential for cost-effective resident engagement solutions.",
			"With {company} in a middle-income market, there are opportunities to provide value-driven resident communication services.",
			"Serving a middle-income community allows {company} to balance quality service with operational efficiency.",
		},
	},
	{
		key: "budget-conscious area",
		options: []string{
			"I noticed {company} manages properties in a budget-conscious area — there's an opportunity to provide efficient, cost-effective resident services.",
			"With {company} in a budget-conscious market, there's potential to deliver high-value resident communication solutions.",
			"Operating in a budget-conscious area means {company} can focus on practical, efficient resident engagement.",
		},
	},
}

const genericInsightSentence = "I noticed {company} manages properties in {city} — that's a great opportunity for resident engagement and operational efficiency."

var valueProps = []string{
	"We help property managers automate communications and save time while improving resident satisfaction.",
	"We specialize in helping property managers streamline resident communications and reduce administrative overhead.",
	"We help property management companies enhance resident engagement through intelligent communication automation.",
	"We provide property managers with tools to automate routine communications and focus on what matters most.",
}

var callsToAction = []string{
	"Would you be open to a quick chat this week to discuss how we might help?",
	"I'd love to schedule a brief call to explore how we could benefit your operations.",
	"Would you be interested in a short conversation about how we could help streamline your resident communications?",
	"Could we schedule a quick call to discuss how we might fit into your property management strategy?",
}

var closings = []string{
	"Best regards,\n[Your Name]\n[Company Name]",
	"Looking forward to connecting,\n[Your Name]\n[Company Name]",
	"Thanks for your time,\n[Your Name]\n[Company Name]",
	"Best,\n[Your Name]\n[Company Name]",
}
