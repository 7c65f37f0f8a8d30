package nutriscore

// DefaultActivityMultiplier applies to any activity level not in ActivityMultipliers.
const DefaultActivityMultiplier = 1.55

// ActivityMultipliers maps activity level keys to their TDEE multiplier.
var ActivityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// Goal keys understood by RecommendedGoals. Anything else maintains weight.
const (
	GoalLose     = "lose"
	GoalGain     = "gain"
	GoalMaintain = "maintain"
)

const (
	loseDeficitKcal = 500
	gainSurplusKcal = 300

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// RecommendedGoals derives daily targets from biometrics.
//
// BMR uses the gender-agnostic Mifflin-St Jeor variant (+5). TDEE is BMR times
// the activity multiplier, then adjusted -500 for "lose" and +300 for "gain".
// Calories split 30/40/30 across protein, carbs and fats. Each of the four
// outputs is rounded on its own, so they need not balance exactly.
func RecommendedGoals(age, weightKG, heightCM float64, activityLevel, goal string) Amounts {
	bmr := 10*weightKG + 6.25*heightCM - 5*age + 5

	mult, ok := ActivityMultipliers[activityLevel]
	if !ok {
		mult = DefaultActivityMultiplier
	}
	tdee := bmr * mult

	switch goal {
	case GoalLose:
		tdee -= loseDeficitKcal
	case GoalGain:
		tdee += gainSurplusKcal
	}

	return Amounts{
		Calories: float64(round(tdee)),
		ProteinG: float64(round(tdee * 0.30 / kcalPerGramProtein)),
		CarbsG:   float64(round(tdee * 0.40 / kcalPerGramCarbs)),
		FatsG:    float64(round(tdee * 0.30 / kcalPerGramFat)),
	}
}
