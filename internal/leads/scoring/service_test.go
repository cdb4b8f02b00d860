package scoring

import "testing"

func TestScoreBounds(t *testing.T) {
	inputs := []struct {
		renters, income, temp float64
	}{
		{0, 0, 0},
		{100, 200000, 70},
		{-10, -500, -40},
		{65, 85000, 70},
		{25, 35000, 95},
		{59.9, 79999.99, 120},
	}

	for _, in := range inputs {
		result := Score(in.renters, in.income, in.temp)
		if result.TotalScore < 0 || result.TotalScore > 100 {
			t.Fatalf("expected total in [0,100] for (%v, %v, %v), got %d",
				in.renters, in.income, in.temp, result.TotalScore)
		}
	}
}

func TestRentalBoundaryJump(t *testing.T) {
	cases := []struct {
		renters  float64
		expected int
	}{
		{59, 35},
		{59.99, 35},
		{60, 40},
		{29.99, 5},
		{30, 15},
	}

	for _, c := range cases {
		result := Score(c.renters, 0, 0)
		if result.RentalScore != c.expected {
			t.Fatalf("expected rental score %d at %v%% renters, got %d",
				c.expected, c.renters, result.RentalScore)
		}
	}
}

func TestTemperatureBoundaries(t *testing.T) {
	cases := []struct {
		temp     float64
		expected int
	}{
		{75, 20},
		{75.01, 15},
		{60, 15},
		{59.99, 10},
		{65, 20},
		{80, 15},
		{80.01, 10},
		{85, 10},
		{90, 5},
		{90.01, 0},
		{50, 5},
		{49.99, 0},
	}

	for _, c := range cases {
		result := Score(0, 0, c.temp)
		if result.TempScore != c.expected {
			t.Fatalf("expected temp score %d at %v°F, got %d", c.expected, c.temp, result.TempScore)
		}
	}
}

func TestScoreMonotonicInRenters(t *testing.T) {
	previous := -1
	for pct := 0.0; pct <= 100; pct += 0.5 {
		result := Score(pct, 55000, 70)
		if result.TotalScore < previous {
			t.Fatalf("score decreased at %v%% renters: %d < %d", pct, result.TotalScore, previous)
		}
		previous = result.TotalScore
	}
}

func TestScoreMonotonicInIncome(t *testing.T) {
	previous := -1
	for income := 0.0; income <= 120000; income += 500 {
		result := Score(45, income, 70)
		if result.TotalScore < previous {
			t.Fatalf("score decreased at income %v: %d < %d", income, result.TotalScore, previous)
		}
		previous = result.TotalScore
	}
}

func TestCategorizeBoundaries(t *testing.T) {
	cases := []struct {
		total    int
		expected string
	}{
		{CategoryHighMin - 1, CategoryMedium},
		{CategoryHighMin, CategoryHigh},
		{CategoryMediumMin - 1, CategoryLow},
		{CategoryMediumMin, CategoryMedium},
		{0, CategoryLow},
		{100, CategoryHigh},
	}

	for _, c := range cases {
		if got := Categorize(c.total); got != c.expected {
			t.Fatalf("expected category %q for total %d, got %q", c.expected, c.total, got)
		}
	}
}

func TestHighValueLead(t *testing.T) {
	result := Score(65, 85000, 70)

	if result.RentalScore != 40 {
		t.Fatalf("expected rental score 40, got %d", result.RentalScore)
	}
	if result.IncomeScore != 30 {
		t.Fatalf("expected income score 30, got %d", result.IncomeScore)
	}
	if result.TempScore != 20 {
		t.Fatalf("expected temp score 20, got %d", result.TempScore)
	}
	if result.TotalScore != 90 {
		t.Fatalf("expected total 90, got %d", result.TotalScore)
	}
	if result.Category != CategoryHigh {
		t.Fatalf("expected category High, got %q", result.Category)
	}
}

func TestLowValueLead(t *testing.T) {
	result := Score(25, 35000, 95)

	if result.RentalScore != 5 || result.IncomeScore != 5 || result.TempScore != 0 {
		t.Fatalf("expected components 5/5/0, got %d/%d/%d",
			result.RentalScore, result.IncomeScore, result.TempScore)
	}
	if result.TotalScore != 10 {
		t.Fatalf("expected total 10, got %d", result.TotalScore)
	}
	if result.Category != CategoryLow {
		t.Fatalf("expected category Low, got %q", result.Category)
	}
}

func TestBreakdownMatchesScore(t *testing.T) {
	breakdown := BreakdownFor(65, 85000, 70)

	if breakdown.Result != Score(65, 85000, 70) {
		t.Fatalf("breakdown numbers diverged from Score: %+v", breakdown.Result)
	}
	if breakdown.RentalLabel != "Excellent" {
		t.Fatalf("expected rental label Excellent, got %q", breakdown.RentalLabel)
	}
	if breakdown.IncomeLabel != "High" {
		t.Fatalf("expected income label High, got %q", breakdown.IncomeLabel)
	}
	if breakdown.TempLabel != "Optimal" {
		t.Fatalf("expected temp label Optimal, got %q", breakdown.TempLabel)
	}
	if breakdown.RentalDetail != "65.0% renters (Excellent) → 40 points" {
		t.Fatalf("unexpected rental detail %q", breakdown.RentalDetail)
	}
	if breakdown.IncomeDetail != "$85,000 income (High) → 30 points" {
		t.Fatalf("unexpected income detail %q", breakdown.IncomeDetail)
	}
	if breakdown.TempDetail != "70°F (Optimal) → 20 points" {
		t.Fatalf("unexpected temp detail %q", breakdown.TempDetail)
	}
}

func TestBreakdownLabels(t *testing.T) {
	breakdown := BreakdownFor(35, 45000, 92)

	if breakdown.RentalLabel != "Low" {
		t.Fatalf("expected rental label Low, got %q", breakdown.RentalLabel)
	}
	if breakdown.IncomeLabel != "Low" {
		t.Fatalf("expected income label Low, got %q", breakdown.IncomeLabel)
	}
	if breakdown.TempLabel != "Extreme" {
		t.Fatalf("expected temp label Extreme, got %q", breakdown.TempLabel)
	}
}

func TestFormatThousands(t *testing.T) {
	cases := []struct {
		in       float64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{85000, "85,000"},
		{1234567, "1,234,567"},
	}

	for _, c := range cases {
		if got := formatThousands(c.in); got != c.expected {
			t.Fatalf("expected %q for %v, got %q", c.expected, c.in, got)
		}
	}
}
