// Package insights derives short human-facing labels from a lead's
// enrichment signals. The labels are coarser than the scoring thresholds on
// purpose: they feed outreach copy, not the score.
package insights

import "strings"

// Tag order is fixed: rental, income, climate. Outreach template selection
// substring-matches the joined string, so reordering changes which template
// fires.
func Derive(percentRenters, medianIncome, temperature float64) []string {
	return []string{
		rentalTag(percentRenters),
		incomeTag(medianIncome),
		climateTag(temperature),
	}
}

// Join renders tags for display and template matching.
func Join(tags []string) string {
	return strings.Join(tags, ", ")
}

func rentalTag(percentRenters float64) string {
	switch {
	case percentRenters > 50:
		return "high rental market"
	case percentRenters > 30:
		return "moderate rental market"
	default:
		return "low rental market"
	}
}

func incomeTag(medianIncome float64) string {
	switch {
	case medianIncome > 75000:
		return "affluent area"
	case medianIncome > 50000:
		return "middle-income area"
	default:
		return "budget-conscious area"
	}
}

func climateTag(temperature float64) string {
	switch {
	case temperature > 80:
		return "warm climate"
	case temperature < 40:
		return "cool climate"
	default:
		return "temperate climate"
	}
}
