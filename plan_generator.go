package main

import (
	"slices"

	"lg/nutriai-go-api/nutriscore"
)

// weekDays is the order days appear in a generated plan.
var weekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// breakfastIngredients are the pantry items the breakfast recipe can use.
var breakfastIngredients = []string{"Eggs", "Spinach", "Oats"}

/* ─── Generator ──────────────────────────────────────────────────────── */

// generateMockWeek builds a seven-day plan of three fixed meals per day.
// Breakfast adapts to the pantry: an omelet when eggs are on hand, oatmeal otherwise.
func generateMockWeek(pantry []string) []planDay {
	breakfastName := "Oatmeal with Berries"
	if slices.Contains(pantry, "Eggs") {
		breakfastName = "Spinach & Egg Omelet"
	}
	used := []string{}
	for _, item := range pantry {
		if slices.Contains(breakfastIngredients, item) {
			used = append(used, item)
		}
	}

	week := make([]planDay, 0, len(weekDays))
	for _, day := range weekDays {
		week = append(week, planDay{
			Day: day,
			Meals: []nutriscore.Meal{
				{
					Type: "Breakfast", Name: breakfastName,
					Calories: 350, ProteinG: 20, CarbsG: 30, FatsG: 15,
					IngredientsUsed: slices.Clone(used),
					RecipeCitations: "Whisk eggs, add spinach, cook for 5 mins.",
				},
				{
					Type: "Lunch", Name: "Grilled Chicken Salad",
					Calories: 500, ProteinG: 45, CarbsG: 10, FatsG: 20,
					IngredientsUsed: []string{"Chicken", "Lettuce"},
					RecipeCitations: "Grill chicken, toss with fresh veggies.",
				},
				{
					Type: "Dinner", Name: "Quinoa Bowl",
					Calories: 450, ProteinG: 15, CarbsG: 60, FatsG: 10,
					IngredientsUsed: []string{"Quinoa"},
					RecipeCitations: "Boil quinoa, add beans and spices.",
				},
			},
		})
	}
	return week
}

/* ─── Scoring ────────────────────────────────────────────────────────── */

// scorePlanDay totals a day's meals and attaches its score and feedback.
func scorePlanDay(d planDay, goals nutriscore.Amounts) scoredDay {
	totals := nutriscore.TotalsFromMeals(d.Meals)
	score := nutriscore.CalculateDailyScore(totals, goals)
	fb := nutriscore.BuildFeedback(totals, goals)

	meals := d.Meals
	if meals == nil {
		meals = []nutriscore.Meal{}
	}
	return scoredDay{
		Day:            d.Day,
		Meals:          meals,
		TotalCalories:  totals.Calories,
		TotalProtein:   totals.ProteinG,
		TotalCarbs:     totals.CarbsG,
		TotalFats:      totals.FatsG,
		NutritionScore: score.TotalScore,
		CalorieScore:   score.CalorieScore,
		ProteinScore:   score.ProteinScore,
		CarbsScore:     score.CarbsScore,
		FatsScore:      score.FatsScore,
		Category:       score.Category,
		Color:          score.Color,
		Emoji:          score.Emoji,
		Feedback:       fb.Message,
		Issues:         fb.Issues,
		Strengths:      fb.Strengths,
		IsOptimal:      fb.IsOptimal,
	}
}

// scorePlan enriches every day of p and computes the weekly average.
func scorePlan(p dietPlan) scoredPlan {
	days := make([]scoredDay, 0, len(p.WeeklyPlan))
	totals := make([]int, 0, len(p.WeeklyPlan))
	for _, d := range p.WeeklyPlan {
		sd := scorePlanDay(d, p.Goals)
		days = append(days, sd)
		totals = append(totals, sd.NutritionScore)
	}
	return scoredPlan{
		ID:                 p.ID,
		UserID:             p.UserID,
		Status:             p.Status,
		Inputs:             p.Inputs,
		Analysis:           p.Analysis,
		Goals:              p.Goals,
		WeeklyPlan:         days,
		WeeklyAverageScore: nutriscore.WeeklyAverage(totals),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// dayScores returns the total score of each day in week against goals.
func dayScores(week []planDay, goals nutriscore.Amounts) []int {
	scores := make([]int, 0, len(week))
	for _, d := range week {
		scores = append(scores, nutriscore.CalculateDailyScore(nutriscore.TotalsFromMeals(d.Meals), goals).TotalScore)
	}
	return scores
}

// planDayFeedback builds the detailed feedback response for one day of p.
func planDayFeedback(p dietPlan, d planDay) dayFeedback {
	actual := nutriscore.TotalsFromMeals(d.Meals)
	return dayFeedback{
		Day:        d.Day,
		Score:      nutriscore.CalculateDailyScore(actual, p.Goals),
		Feedback:   nutriscore.BuildFeedback(actual, p.Goals),
		Actual:     actual,
		Goals:      p.Goals,
		IsBalanced: nutriscore.IsBalanced(actual, p.Goals, nutriscore.DefaultBalanceThreshold),
	}
}
