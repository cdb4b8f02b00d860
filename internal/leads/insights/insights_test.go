package insights

import (
	"strings"
	"testing"
)

func TestDeriveAlwaysThreeTags(t *testing.T) {
	inputs := []struct {
		renters, income, temp float64
	}{
		{0, 0, 0},
		{100, 200000, 120},
		{-5, -100, -40},
		{50, 75000, 80},
	}

	for _, in := range inputs {
		tags := Derive(in.renters, in.income, in.temp)
		if len(tags) != 3 {
			t.Fatalf("expected 3 tags for (%v, %v, %v), got %d",
				in.renters, in.income, in.temp, len(tags))
		}
		joined := Join(tags)
		if strings.Count(joined, ", ") != 2 {
			t.Fatalf("expected two separators in %q", joined)
		}
	}
}

func TestDeriveOrderAndLabels(t *testing.T) {
	tags := Derive(65, 85000, 70)

	expected := []string{"high rental market", "affluent area", "temperate climate"}
	for i, tag := range expected {
		if tags[i] != tag {
			t.Fatalf("expected tag %d to be %q, got %q", i, tag, tags[i])
		}
	}
	if Join(tags) != "high rental market, affluent area, temperate climate" {
		t.Fatalf("unexpected joined insights %q", Join(tags))
	}
}

func TestDeriveBoundaries(t *testing.T) {
	// Insight thresholds are strict comparisons, unlike the scoring bands.
	if tag := rentalTag(50); tag != "moderate rental market" {
		t.Fatalf("expected moderate rental market at exactly 50, got %q", tag)
	}
	if tag := rentalTag(50.01); tag != "high rental market" {
		t.Fatalf("expected high rental market just above 50, got %q", tag)
	}
	if tag := rentalTag(30); tag != "low rental market" {
		t.Fatalf("expected low rental market at exactly 30, got %q", tag)
	}
	if tag := incomeTag(75000); tag != "middle-income area" {
		t.Fatalf("expected middle-income area at exactly 75000, got %q", tag)
	}
	if tag := incomeTag(50000); tag != "budget-conscious area" {
		t.Fatalf("expected budget-conscious area at exactly 50000, got %q", tag)
	}
	if tag := climateTag(80); tag != "temperate climate" {
		t.Fatalf("expected temperate climate at exactly 80, got %q", tag)
	}
	if tag := climateTag(40); tag != "temperate climate" {
		t.Fatalf("expected temperate climate at exactly 40, got %q", tag)
	}
	if tag := climateTag(39.9); tag != "cool climate" {
		t.Fatalf("expected cool climate below 40, got %q", tag)
	}
}
