package outreach

import "strings"

// weatherPhrase pairs a provider weather term with its conversational
// replacement.
type weatherPhrase struct {
	term   string
	phrase string
}

// weatherPhrases is scanned in declared order for the substring fallback, so
// the slice order is part of the contract. More specific terms come before
// their prefixes within each group.
var weatherPhrases = []weatherPhrase{
	// Clear skies
	{"clear sky", "beautiful sunny weather"},
	{"clear", "beautiful sunny weather"},
	{"sunny", "sunny weather"},

	// Clouds
	{"few clouds", "mostly sunny weather"},
	{"scattered clouds", "partly cloudy weather"},
	{"broken clouds", "partly cloudy weather"},
	{"overcast clouds", "cloudy weather"},
	{"overcast", "cloudy weather"},
	{"cloudy", "cloudy weather"},

	// Rain
	{"light rain", "light rain"},
	{"moderate rain", "rainy weather"},
	{"heavy rain", "heavy rain"},
	{"very heavy rain", "heavy rain"},
	{"extreme rain", "heavy rain"},
	{"freezing rain", "freezing rain"},
	{"light intensity shower rain", "light rain"},
	{"shower rain", "rainy weather"},
	{"heavy intensity shower rain", "heavy rain"},
	{"ragged shower rain", "rainy weather"},
	{"light intensity drizzle", "light drizzle"},
	{"drizzle", "light drizzle"},
	{"heavy intensity drizzle", "heavy drizzle"},
	{"light intensity drizzle rain", "light rain"},
	{"drizzle rain", "light rain"},
	{"heavy intensity drizzle rain", "rainy weather"},
	{"shower rain and drizzle", "rainy weather"},
	{"heavy shower rain and drizzle", "heavy rain"},
	{"shower drizzle", "light rain"},

	// Snow
	{"light snow", "light snow"},
	{"snow", "snowy weather"},
	{"heavy snow", "heavy snow"},
	{"sleet", "sleety weather"},
	{"light shower sleet", "light sleet"},
	{"shower sleet", "sleety weather"},
	{"light rain and snow", "light wintry mix"},
	{"rain and snow", "wintry mix"},
	{"light shower snow", "light snow"},
	{"shower snow", "snowy weather"},
	{"heavy shower snow", "heavy snow"},

	// Storms
	{"thunderstorm", "stormy weather"},
	{"thunderstorm with light rain", "light storm"},
	{"thunderstorm with rain", "stormy weather"},
	{"thunderstorm with heavy rain", "heavy storm"},
	{"light thunderstorm", "light storm"},
	{"heavy thunderstorm", "heavy storm"},
	{"ragged thunderstorm", "stormy weather"},
	{"thunderstorm with light drizzle", "light storm"},
	{"thunderstorm with drizzle", "stormy weather"},
	{"thunderstorm with heavy drizzle", "heavy storm"},

	// Fog, mist and the rest
	{"mist", "misty weather"},
	{"fog", "foggy weather"},
	{"foggy", "foggy weather"},
	{"haze", "hazy weather"},
	{"smoke", "smoky weather"},
	{"dust", "dusty weather"},
	{"sand", "sandy weather"},
	{"ash", "ashy weather"},
	{"squalls", "windy weather"},
	{"tornado", "stormy weather"},
	{"tropical storm", "stormy weather"},
	{"hurricane", "stormy weather"},
	{"cold", "cold weather"},
	{"hot", "hot weather"},
	{"windy", "windy weather"},
	{"hail", "hail"},
}

const defaultWeatherPhrase = "pleasant weather"

// NormalizeWeather converts a provider weather description into a
// conversational phrase. It degrades gracefully: exact match, then substring
// match in table order, then keyword buckets, then a neutral default. It
// never fails, including for empty input.
func NormalizeWeather(description string) string {
	lowered := strings.ToLower(strings.TrimSpace(description))

	for _, entry := range weatherPhrases {
		if entry.term == lowered {
			return entry.phrase
		}
	}

	for _, entry := range weatherPhrases {
		if strings.Contains(lowered, entry.term) {
			return entry.phrase
		}
	}

	switch {
	case strings.Contains(lowered, "rain"):
		return "rainy weather"
	case strings.Contains(lowered, "snow"):
		return "snowy weather"
	case strings.Contains(lowered, "cloud"):
		return "cloudy weather"
	case strings.Contains(lowered, "clear"), strings.Contains(lowered, "sun"):
		return "sunny weather"
	case strings.Contains(lowered, "storm"), strings.Contains(lowered, "thunder"):
		return "stormy weather"
	case strings.Contains(lowered, "fog"), strings.Contains(lowered, "mist"):
		return "foggy weather"
	}

	return defaultWeatherPhrase
}
