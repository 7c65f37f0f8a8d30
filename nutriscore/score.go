// Package nutriscore grades a day's macro intake against target goals.
//
// Every function here is pure: no I/O, no shared state, safe to call from any
// number of goroutines. Edge cases (zero goals, empty input) resolve to fixed
// fallback values instead of errors.
package nutriscore

import "math"

// MaxComponentPoints is the most a single macro can contribute to a daily score.
// Four components at 25 points each make up the 0–100 total.
const MaxComponentPoints = 25

// Score colors, keyed by the lower bound of the band they cover.
const (
	ColorGreen  = "#4CAF50"
	ColorOrange = "#FFBE76"
	ColorRed    = "#FF6B6B"
)

// Amounts holds the four tracked macros. The same shape is used for what was
// actually eaten and for the goals it is graded against.
type Amounts struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

// Score is the graded result for one day. Sub-scores are rounded on their own,
// so they may not add up exactly to TotalScore.
type Score struct {
	TotalScore   int    `json:"total_score"`
	CalorieScore int    `json:"calorie_score"`
	ProteinScore int    `json:"protein_score"`
	CarbsScore   int    `json:"carbs_score"`
	FatsScore    int    `json:"fats_score"`
	Category     string `json:"category"`
	Color        string `json:"color"`
	Emoji        string `json:"emoji"`
}

// ComponentScore converts the distance between actual and goal into points.
// 0% deviation earns maxPoints, 100% or more earns 0. A goal <= 0 has no
// sensible target and scores 0.
func ComponentScore(actual, goal, maxPoints float64) float64 {
	if goal <= 0 {
		return 0
	}
	deviation := math.Abs(actual-goal) / goal
	return clamp((1-deviation)*maxPoints, 0, maxPoints)
}

// CalculateDailyScore grades actual intake against goals.
func CalculateDailyScore(actual, goals Amounts) Score {
	calorieScore := ComponentScore(actual.Calories, goals.Calories, MaxComponentPoints)
	proteinScore := ComponentScore(actual.ProteinG, goals.ProteinG, MaxComponentPoints)
	carbsScore := ComponentScore(actual.CarbsG, goals.CarbsG, MaxComponentPoints)
	fatsScore := ComponentScore(actual.FatsG, goals.FatsG, MaxComponentPoints)

	// Components are already clamped; the outer clamp keeps the total in range
	// if MaxComponentPoints ever changes.
	total := round(clamp(calorieScore+proteinScore+carbsScore+fatsScore, 0, 100))

	return Score{
		TotalScore:   total,
		CalorieScore: round(calorieScore),
		ProteinScore: round(proteinScore),
		CarbsScore:   round(carbsScore),
		FatsScore:    round(fatsScore),
		Category:     Category(total),
		Color:        Color(total),
		Emoji:        Emoji(total),
	}
}

// Category returns the label for a total score.
func Category(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Great"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Fair"
	case score >= 50:
		return "Needs Work"
	default:
		return "Poor"
	}
}

// Color returns the hex color for a total score.
func Color(score int) string {
	switch {
	case score >= 80:
		return ColorGreen
	case score >= 60:
		return ColorOrange
	default:
		return ColorRed
	}
}

// Emoji returns the glyph for a total score.
func Emoji(score int) string {
	switch {
	case score >= 90:
		return "🌟"
	case score >= 80:
		return "⭐"
	case score >= 70:
		return "👍"
	case score >= 60:
		return "😊"
	case score >= 50:
		return "😐"
	default:
		return "😟"
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round is round-half-up, so 70.5 → 71 and 17.5 → 18.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
