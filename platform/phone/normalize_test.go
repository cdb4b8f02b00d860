package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"(512) 555-0100", "+15125550100"},
		{"512-555-0100", "+15125550100"},
		{"+15125550100", "+15125550100"},
		{"+44 20 7946 0958", "+442079460958"},
		{"  +15125550100  ", "+15125550100"},
		{"not a number", "not a number"},
		{"123", "123"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.input); got != tc.want {
			t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
