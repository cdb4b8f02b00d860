// Package scoring computes the priority score for a lead from its enrichment
// signals. Scoring is pure and deterministic: the same three inputs always
// produce the same result, and no input combination is an error.
package scoring

import (
	"fmt"
	"math"
	"strconv"
)

const (
	maxRentalScore = 40
	maxIncomeScore = 30
	maxTempScore   = 20

	minTotalScore = 0
	maxTotalScore = 100

	// Category cutoffs are product constants, deliberately not derived
	// from the sub-score maxima.
	CategoryHighMin   = 71
	CategoryMediumMin = 41
)

// Score categories.
const (
	CategoryHigh   = "High"
	CategoryMedium = "Medium"
	CategoryLow    = "Low"
)

// Result holds the computed priority score for a single lead.
type Result struct {
	TotalScore  int    `json:"total_score"`
	RentalScore int    `json:"rental_score"`
	IncomeScore int    `json:"income_score"`
	TempScore   int    `json:"temp_score"`
	Category    string `json:"category"`
}

// Breakdown extends Result with per-component labels and human-readable
// explanations. The numbers are identical to Score's.
type Breakdown struct {
	Result
	RentalLabel  string `json:"rental_label"`
	IncomeLabel  string `json:"income_label"`
	TempLabel    string `json:"temp_label"`
	RentalDetail string `json:"rental_detail"`
	IncomeDetail string `json:"income_detail"`
	TempDetail   string `json:"temp_detail"`
}

// WeightEntry documents one scoring factor for the weights endpoint.
type WeightEntry struct {
	Factor      string `json:"factor"`
	MaxPoints   int    `json:"max_points"`
	Explanation string `json:"explanation"`
}

// Score computes the lead score from the three enrichment signals.
func Score(percentRenters, medianIncome, temperature float64) Result {
	rental := scoreRenters(percentRenters)
	income := scoreIncome(medianIncome)
	temp := scoreTemperature(temperature)

	total := clampScore(rental+income+temp, minTotalScore, maxTotalScore)

	return Result{
		TotalScore:  total,
		RentalScore: int(rental),
		IncomeScore: int(income),
		TempScore:   int(temp),
		Category:    Categorize(total),
	}
}

// Categorize maps a total score to its High/Medium/Low bucket.
func Categorize(total int) string {
	switch {
	case total >= CategoryHighMin:
		return CategoryHigh
	case total >= CategoryMediumMin:
		return CategoryMedium
	default:
		return CategoryLow
	}
}

// BreakdownFor computes the score together with per-component labels and
// display strings.
func BreakdownFor(percentRenters, medianIncome, temperature float64) Breakdown {
	result := Score(percentRenters, medianIncome, temperature)

	rentalLabel := rentersLabel(percentRenters)
	incomeLbl := incomeLabel(medianIncome)
	tempLabel := temperatureLabel(temperature)

	return Breakdown{
		Result:      result,
		RentalLabel: rentalLabel,
		IncomeLabel: incomeLbl,
		TempLabel:   tempLabel,
		RentalDetail: fmt.Sprintf("%.1f%% renters (%s) → %d points",
			percentRenters, rentalLabel, result.RentalScore),
		IncomeDetail: fmt.Sprintf("$%s income (%s) → %d points",
			formatThousands(medianIncome), incomeLbl, result.IncomeScore),
		TempDetail: fmt.Sprintf("%s°F (%s) → %d points",
			strconv.FormatFloat(temperature, 'f', -1, 64), tempLabel, result.TempScore),
	}
}

// Weights documents the scoring factors in display order.
func Weights() []WeightEntry {
	return []WeightEntry{
		{
			Factor:      "rental_percentage",
			MaxPoints:   maxRentalScore,
			Explanation: "Higher rental percentage indicates more potential customers for property management services",
		},
		{
			Factor:      "median_income",
			MaxPoints:   maxIncomeScore,
			Explanation: "Higher income areas have more disposable income for premium services",
		},
		{
			Factor:      "temperature",
			MaxPoints:   maxTempScore,
			Explanation: "Comfortable weather conditions correlate with higher resident engagement",
		},
	}
}

// scoreRenters awards up to 40 points for rental market density. Step
// thresholds, no interpolation between them.
func scoreRenters(percentRenters float64) float64 {
	switch {
	case percentRenters >= 60:
		return 40
	case percentRenters >= 50:
		return 35
	case percentRenters >= 40:
		return 25
	case percentRenters >= 30:
		return 15
	default:
		return 5
	}
}

// scoreIncome awards up to 30 points for area median income.
func scoreIncome(medianIncome float64) float64 {
	switch {
	case medianIncome >= 80000:
		return 30
	case medianIncome >= 70000:
		return 25
	case medianIncome >= 60000:
		return 20
	case medianIncome >= 50000:
		return 15
	case medianIncome >= 40000:
		return 10
	default:
		return 5
	}
}

// scoreTemperature awards up to 20 points for comfort bands around 65-75°F.
// Band edges are inclusive on the side nearer the optimal band: t=75 is
// optimal, t=75.01 is good; t=60 is good, t=59.99 is moderate.
func scoreTemperature(t float64) float64 {
	switch {
	case t >= 65 && t <= 75:
		return 20
	case (t >= 60 && t < 65) || (t > 75 && t <= 80):
		return 15
	case (t >= 55 && t < 60) || (t > 80 && t <= 85):
		return 10
	case (t >= 50 && t < 55) || (t > 85 && t <= 90):
		return 5
	default:
		return 0
	}
}

func rentersLabel(percentRenters float64) string {
	switch {
	case percentRenters >= 60:
		return "Excellent"
	case percentRenters >= 50:
		return "High"
	case percentRenters >= 40:
		return "Moderate"
	case percentRenters >= 30:
		return "Low"
	default:
		return "Very Low"
	}
}

func incomeLabel(medianIncome float64) string {
	switch {
	case medianIncome >= 80000:
		return "High"
	case medianIncome >= 70000:
		return "Above Average"
	case medianIncome >= 60000:
		return "Average"
	case medianIncome >= 50000:
		return "Below Average"
	case medianIncome >= 40000:
		return "Low"
	default:
		return "Very Low"
	}
}

func temperatureLabel(t float64) string {
	switch {
	case t >= 65 && t <= 75:
		return "Optimal"
	case (t >= 60 && t < 65) || (t > 75 && t <= 80):
		return "Good"
	case (t >= 55 && t < 60) || (t > 80 && t <= 85):
		return "Moderate"
	case (t >= 50 && t < 55) || (t > 85 && t <= 90):
		return "Poor"
	default:
		return "Extreme"
	}
}

// clampScore rounds to the nearest integer and clamps into [min, max]. The
// upper clamp is unreachable with the current band maxima but stays in place
// so future band changes cannot push the total past 100.
func clampScore(value float64, min, max int) int {
	rounded := int(math.Round(value))
	if rounded < min {
		return min
	}
	if rounded > max {
		return max
	}
	return rounded
}

// formatThousands renders an amount with comma separators and no decimal
// places, e.g. 85000 -> "85,000".
func formatThousands(value float64) string {
	whole := strconv.FormatFloat(math.Round(value), 'f', 0, 64)

	negative := false
	if len(whole) > 0 && whole[0] == '-' {
		negative = true
		whole = whole[1:]
	}

	var out []byte
	for i := 0; i < len(whole); i++ {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, whole[i])
	}

	if negative {
		return "-" + string(out)
	}
	return string(out)
}
