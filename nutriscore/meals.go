package nutriscore

// Meal is one planned or logged meal. Only the four numeric fields feed the
// score; the rest is descriptive.
type Meal struct {
	Type            string   `json:"type"`
	Name            string   `json:"name"`
	Calories        float64  `json:"calories"`
	ProteinG        float64  `json:"protein_g"`
	CarbsG          float64  `json:"carbs_g"`
	FatsG           float64  `json:"fats_g"`
	IngredientsUsed []string `json:"ingredients_used,omitempty"`
	RecipeCitations string   `json:"recipe_citations,omitempty"`
}

// Amounts returns the meal's macros.
func (m Meal) Amounts() Amounts {
	return Amounts{Calories: m.Calories, ProteinG: m.ProteinG, CarbsG: m.CarbsG, FatsG: m.FatsG}
}

// Add returns the field-wise sum of a and b.
func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{
		Calories: a.Calories + b.Calories,
		ProteinG: a.ProteinG + b.ProteinG,
		CarbsG:   a.CarbsG + b.CarbsG,
		FatsG:    a.FatsG + b.FatsG,
	}
}

// TotalsFromMeals sums the macros of every meal. An empty slice yields zero.
func TotalsFromMeals(meals []Meal) Amounts {
	var totals Amounts
	for _, m := range meals {
		totals = totals.Add(m.Amounts())
	}
	return totals
}

// WeeklyAverage returns the rounded mean of dailyScores, or 0 for none.
func WeeklyAverage(dailyScores []int) int {
	if len(dailyScores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range dailyScores {
		sum += s
	}
	return round(float64(sum) / float64(len(dailyScores)))
}
