package outreach

import "testing"

func TestNormalizeWeatherExactMatches(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"clear sky", "beautiful sunny weather"},
		{"Clear Sky", "beautiful sunny weather"},
		{"CLEAR SKY", "beautiful sunny weather"},
		{"thunderstorm with heavy rain", "heavy storm"},
		{"Thunderstorm With Heavy Rain", "heavy storm"},
		{"few clouds", "mostly sunny weather"},
		{"overcast clouds", "cloudy weather"},
		{"light intensity drizzle", "light drizzle"},
		{"rain and snow", "wintry mix"},
		{"hail", "hail"},
	}

	for _, c := range cases {
		if got := NormalizeWeather(c.in); got != c.expected {
			t.Fatalf("expected %q for %q, got %q", c.expected, c.in, got)
		}
	}
}

func TestNormalizeWeatherSubstringMatch(t *testing.T) {
	// No exact entry, so the table is scanned in order and the first
	// contained term wins.
	if got := NormalizeWeather("mostly clear tonight"); got != "beautiful sunny weather" {
		t.Fatalf("expected beautiful sunny weather, got %q", got)
	}
	if got := NormalizeWeather("patchy light rain nearby"); got != "light rain" {
		t.Fatalf("expected light rain, got %q", got)
	}
}

func TestNormalizeWeatherKeywordFallback(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"chance of precipitation with rainfall", "rainy weather"},
		{"snowfall expected", "snowy weather"},
		{"thundery outbreaks", "stormy weather"},
	}

	for _, c := range cases {
		if got := NormalizeWeather(c.in); got != c.expected {
			t.Fatalf("expected %q for %q, got %q", c.expected, c.in, got)
		}
	}
}

func TestNormalizeWeatherNeverEmpty(t *testing.T) {
	inputs := []string{"", "   ", "xyzzy", "no conditions reported", "42"}

	for _, in := range inputs {
		got := NormalizeWeather(in)
		if got == "" {
			t.Fatalf("expected non-empty phrase for %q", in)
		}
	}

	if got := NormalizeWeather("xyzzy"); got != "pleasant weather" {
		t.Fatalf("expected pleasant weather default, got %q", got)
	}
	if got := NormalizeWeather(""); got != "pleasant weather" {
		t.Fatalf("expected pleasant weather for empty input, got %q", got)
	}
}
