package nutriscore

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestRecommendedGoals_SedentaryMaintain works one profile through by hand:
// bmr = 700 + 1093.75 - 150 + 5 = 1648.75, tdee = 1648.75 * 1.2 = 1978.5.
func TestRecommendedGoals_SedentaryMaintain(t *testing.T) {
	got := RecommendedGoals(30, 70, 175, "sedentary", GoalMaintain)
	want := Amounts{Calories: 1979, ProteinG: 148, CarbsG: 198, FatsG: 66}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RecommendedGoals mismatch (-want +got):\n%s", diff)
	}
}

// TestRecommendedGoals_GoalAdjustments verifies the -500 and +300 calorie
// shifts and that unknown goals maintain.
func TestRecommendedGoals_GoalAdjustments(t *testing.T) {
	maintain := RecommendedGoals(30, 70, 175, "sedentary", GoalMaintain)

	cases := []struct {
		goal  string
		delta float64
	}{
		{GoalLose, -500},
		{GoalGain, 300},
		{"bulk", 0},
		{"", 0},
	}
	for _, tc := range cases {
		t.Run(tc.goal, func(t *testing.T) {
			got := RecommendedGoals(30, 70, 175, "sedentary", tc.goal)
			if got.Calories != maintain.Calories+tc.delta {
				t.Errorf("Calories = %v, want %v", got.Calories, maintain.Calories+tc.delta)
			}
		})
	}
}

// TestRecommendedGoals_UnknownActivity verifies an unrecognized level falls
// back to the moderate multiplier.
func TestRecommendedGoals_UnknownActivity(t *testing.T) {
	moderate := RecommendedGoals(40, 80, 180, "moderate", GoalMaintain)
	for _, level := range []string{"couch", "", "Moderate", "Very Active"} {
		if got := RecommendedGoals(40, 80, 180, level, GoalMaintain); got != moderate {
			t.Errorf("RecommendedGoals(level=%q) = %+v, want moderate %+v", level, got, moderate)
		}
	}
}

// TestRecommendedGoals_ActivityOrdering verifies that more activity never
// lowers the calorie target.
func TestRecommendedGoals_ActivityOrdering(t *testing.T) {
	levels := []string{"sedentary", "light", "moderate", "active", "very_active"}
	prev := 0.0
	for _, level := range levels {
		got := RecommendedGoals(25, 60, 165, level, GoalMaintain)
		if got.Calories <= prev {
			t.Errorf("%s calories %v not above previous level %v", level, got.Calories, prev)
		}
		prev = got.Calories
	}
}
