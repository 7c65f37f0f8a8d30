package main

import (
	"strings"
	"time"

	"lg/nutriai-go-api/nutriscore"
)

// defaultGoals are the daily targets used whenever biometrics are missing.
var defaultGoals = nutriscore.Amounts{Calories: 2000, ProteinG: 100, CarbsG: 200, FatsG: 65}

// profileActivityLevels are the activity levels a profile may store.
// activityKey maps each onto a nutriscore.ActivityMultipliers key.
var profileActivityLevels = []string{"Sedentary", "Light", "Moderate", "Active", "Very Active"}

// activityKey normalizes a display label ("Very Active") to a multiplier key ("very_active").
func activityKey(level string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(level)), " ", "_")
}

// validActivityLevel reports whether level is one of profileActivityLevels
// (case-insensitive).
func validActivityLevel(level string) bool {
	_, ok := nutriscore.ActivityMultipliers[activityKey(level)]
	return ok
}

// goalKey picks the calorie adjustment for a set of free-text goals.
// The first goal that implies losing or gaining weight wins.
func goalKey(goals ...string) string {
	for _, g := range goals {
		switch strings.ToLower(strings.TrimSpace(g)) {
		case "lose", "lose weight", "weight loss":
			return nutriscore.GoalLose
		case "gain", "gain weight", "build muscle", "muscle gain":
			return nutriscore.GoalGain
		}
	}
	return nutriscore.GoalMaintain
}

// goalsForUser returns recommended goals when the profile has age, weight and
// height, and defaultGoals (isDefault=true) otherwise.
func goalsForUser(u user) (goals nutriscore.Amounts, isDefault bool) {
	if u.Age == nil || u.WeightKG == nil || u.HeightCM == nil ||
		*u.Age <= 0 || *u.WeightKG <= 0 || *u.HeightCM <= 0 {
		return defaultGoals, true
	}
	return nutriscore.RecommendedGoals(
		float64(*u.Age), *u.WeightKG, *u.HeightCM,
		activityKey(u.HealthData.ActivityLevel),
		goalKey(u.HealthData.Goals...),
	), false
}

// goalsForInputs is goalsForUser for the biometrics submitted with a plan request.
func goalsForInputs(in planInputs) nutriscore.Amounts {
	if in.Age <= 0 || in.Weight <= 0 || in.Height <= 0 {
		return defaultGoals
	}
	return nutriscore.RecommendedGoals(in.Age, in.Weight, in.Height, activityKey(in.ActivityLevel), goalKey(in.Goal))
}

// currentMonday returns the Monday of the current week at midnight UTC.
// Uses AddDate to safely handle month/year boundaries.
func currentMonday() time.Time {
	return mondayOf(time.Now().UTC())
}

// mondayOf returns the Monday on or before t, truncated to midnight UTC.
func mondayOf(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday()) // 0=Sun
	if weekday == 0 {
		weekday = 7 // treat Sunday as day 7 so Mon=1..Sun=7
	}
	return t.AddDate(0, 0, -(weekday - 1)).Truncate(24 * time.Hour)
}
