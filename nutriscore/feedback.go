package nutriscore

import (
	"math"
	"strings"
)

// DefaultBalanceThreshold is the allowed absolute deviation per macro in IsBalanced.
const DefaultBalanceThreshold = 0.15

// Deviations carries the signed fractional deviation of each macro.
// Positive means over target.
type Deviations struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Feedback is the human-readable assessment of a day.
type Feedback struct {
	Issues     []string   `json:"issues"`
	Strengths  []string   `json:"strengths"`
	Message    string     `json:"message"`
	IsOptimal  bool       `json:"is_optimal"`
	Deviations Deviations `json:"deviations"`
}

// macroRule classifies one macro. A deviation inside onTarget is a strength,
// past tooHigh or tooLow an issue, anything in between produces no entry.
type macroRule struct {
	onTarget float64
	tooHigh  float64
	tooLow   float64
	strength string
	highMsg  string
	lowMsg   string
}

var (
	calorieRule = macroRule{0.10, 0.20, -0.20, "Calorie intake is perfect", "Consuming too many calories", "Not eating enough calories"}
	proteinRule = macroRule{0.10, 0.20, -0.15, "Protein intake is on target", "Too much protein", "Need more protein"}
	carbsRule   = macroRule{0.10, 0.20, -0.15, "Carb intake is balanced", "Too many carbs", "Need more carbs for energy"}
	fatsRule    = macroRule{0.10, 0.20, -0.15, "Healthy fat intake", "Too many fats", "Need more healthy fats"}
)

// classify returns the strength or issue message for dev. Exactly one of the
// two is non-empty, or both are empty for the dead zone.
func (r macroRule) classify(dev float64) (strength, issue string) {
	switch {
	case math.Abs(dev) < r.onTarget:
		return r.strength, ""
	case dev > r.tooHigh:
		return "", r.highMsg
	case dev < r.tooLow:
		return "", r.lowMsg
	default:
		return "", ""
	}
}

// DeviationPct returns (actual-goal)/goal, or 0 when goal <= 0.
func DeviationPct(actual, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return (actual - goal) / goal
}

// BuildFeedback lists issues and strengths for actual intake against goals.
// Macros are evaluated in the order calories, protein, carbs, fats so the
// lists are deterministic.
func BuildFeedback(actual, goals Amounts) Feedback {
	devs := Deviations{
		Calories: DeviationPct(actual.Calories, goals.Calories),
		Protein:  DeviationPct(actual.ProteinG, goals.ProteinG),
		Carbs:    DeviationPct(actual.CarbsG, goals.CarbsG),
		Fats:     DeviationPct(actual.FatsG, goals.FatsG),
	}

	issues := []string{}
	strengths := []string{}
	checks := []struct {
		rule macroRule
		dev  float64
	}{
		{calorieRule, devs.Calories},
		{proteinRule, devs.Protein},
		{carbsRule, devs.Carbs},
		{fatsRule, devs.Fats},
	}
	for _, chk := range checks {
		strength, issue := chk.rule.classify(chk.dev)
		if strength != "" {
			strengths = append(strengths, strength)
		}
		if issue != "" {
			issues = append(issues, issue)
		}
	}

	return Feedback{
		Issues:     issues,
		Strengths:  strengths,
		Message:    feedbackMessage(issues, strengths),
		IsOptimal:  len(issues) == 0,
		Deviations: devs,
	}
}

func feedbackMessage(issues, strengths []string) string {
	switch {
	case len(issues) == 0 && len(strengths) > 0:
		return "Great job! " + strings.Join(strengths, ", ") + "."
	case len(issues) > 0:
		first := ""
		if len(strengths) > 0 {
			first = strengths[0]
		}
		return strings.Join(issues, ", ") + ". " + first
	default:
		return "Keep up the good work!"
	}
}

// IsBalanced reports whether protein, carbs and fats are all within threshold
// of their goals. Calories are not considered.
func IsBalanced(actual, goals Amounts, threshold float64) bool {
	return math.Abs(DeviationPct(actual.ProteinG, goals.ProteinG)) < threshold &&
		math.Abs(DeviationPct(actual.CarbsG, goals.CarbsG)) < threshold &&
		math.Abs(DeviationPct(actual.FatsG, goals.FatsG)) < threshold
}
