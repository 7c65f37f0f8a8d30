package nutriscore

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDeviationPct covers the zero-goal guard and signed deviations.
func TestDeviationPct(t *testing.T) {
	cases := []struct {
		actual, goal, want float64
	}{
		{100, 0, 0},
		{100, -5, 0},
		{100, 100, 0},
		{150, 100, 0.5},
		{50, 100, -0.5},
		{0, 100, -1},
	}
	for _, tc := range cases {
		if got := DeviationPct(tc.actual, tc.goal); got != tc.want {
			t.Errorf("DeviationPct(%v, %v) = %v, want %v", tc.actual, tc.goal, got, tc.want)
		}
	}
}

// TestBuildFeedback_AllOnTarget verifies the perfect-day message and that all
// four strengths are listed in macro order.
func TestBuildFeedback_AllOnTarget(t *testing.T) {
	got := BuildFeedback(defaultGoals, defaultGoals)
	want := Feedback{
		Issues: []string{},
		Strengths: []string{
			"Calorie intake is perfect",
			"Protein intake is on target",
			"Carb intake is balanced",
			"Healthy fat intake",
		},
		Message:   "Great job! Calorie intake is perfect, Protein intake is on target, Carb intake is balanced, Healthy fat intake.",
		IsOptimal: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildFeedback mismatch (-want +got):\n%s", diff)
	}
}

// TestBuildFeedback_IssueWithStrengths verifies that only the first strength
// follows the issue list.
func TestBuildFeedback_IssueWithStrengths(t *testing.T) {
	actual := Amounts{Calories: 2600, ProteinG: 100, CarbsG: 200, FatsG: 65}
	got := BuildFeedback(actual, defaultGoals)

	if diff := cmp.Diff([]string{"Consuming too many calories"}, got.Issues); diff != "" {
		t.Errorf("Issues mismatch (-want +got):\n%s", diff)
	}
	if len(got.Strengths) != 3 {
		t.Errorf("len(Strengths) = %d, want 3", len(got.Strengths))
	}
	if want := "Consuming too many calories. Protein intake is on target"; got.Message != want {
		t.Errorf("Message = %q, want %q", got.Message, want)
	}
	if got.IsOptimal {
		t.Error("IsOptimal = true, want false")
	}
	if got.Deviations.Calories < 0.29 || got.Deviations.Calories > 0.31 {
		t.Errorf("Deviations.Calories = %v, want ~0.30", got.Deviations.Calories)
	}
}

// TestBuildFeedback_IssuesOnly verifies the trailing separator is kept when
// there is no strength to append.
func TestBuildFeedback_IssuesOnly(t *testing.T) {
	actual := Amounts{Calories: 2600, ProteinG: 130, CarbsG: 260, FatsG: 90}
	got := BuildFeedback(actual, defaultGoals)

	wantIssues := []string{"Consuming too many calories", "Too much protein", "Too many carbs", "Too many fats"}
	if diff := cmp.Diff(wantIssues, got.Issues); diff != "" {
		t.Errorf("Issues mismatch (-want +got):\n%s", diff)
	}
	if want := "Consuming too many calories, Too much protein, Too many carbs, Too many fats. "; got.Message != want {
		t.Errorf("Message = %q, want %q", got.Message, want)
	}
}

// TestBuildFeedback_TooLow verifies each macro's low-side message.
func TestBuildFeedback_TooLow(t *testing.T) {
	actual := Amounts{Calories: 1000, ProteinG: 50, CarbsG: 100, FatsG: 30}
	got := BuildFeedback(actual, defaultGoals)

	wantIssues := []string{
		"Not eating enough calories",
		"Need more protein",
		"Need more carbs for energy",
		"Need more healthy fats",
	}
	if diff := cmp.Diff(wantIssues, got.Issues); diff != "" {
		t.Errorf("Issues mismatch (-want +got):\n%s", diff)
	}
	if len(got.Strengths) != 0 {
		t.Errorf("Strengths = %v, want none", got.Strengths)
	}
}

// TestBuildFeedback_DeadZone verifies deviations between the on-target and
// out-of-range bands produce neither an issue nor a strength.
func TestBuildFeedback_DeadZone(t *testing.T) {
	// +15% on every macro (fats 75/65 ≈ +15.4%).
	actual := Amounts{Calories: 2300, ProteinG: 115, CarbsG: 230, FatsG: 75}
	got := BuildFeedback(actual, defaultGoals)

	if len(got.Issues) != 0 || len(got.Strengths) != 0 {
		t.Fatalf("got issues=%v strengths=%v, want both empty", got.Issues, got.Strengths)
	}
	if got.Message != "Keep up the good work!" {
		t.Errorf("Message = %q, want %q", got.Message, "Keep up the good work!")
	}
	if !got.IsOptimal {
		t.Error("IsOptimal = false, want true")
	}
}

// TestBuildFeedback_AsymmetricLowBand verifies that calories tolerate -18%
// without an issue while protein at -18% is flagged.
func TestBuildFeedback_AsymmetricLowBand(t *testing.T) {
	actual := Amounts{Calories: 1640, ProteinG: 82, CarbsG: 200, FatsG: 65}
	got := BuildFeedback(actual, defaultGoals)

	if diff := cmp.Diff([]string{"Need more protein"}, got.Issues); diff != "" {
		t.Errorf("Issues mismatch (-want +got):\n%s", diff)
	}
	wantStrengths := []string{"Carb intake is balanced", "Healthy fat intake"}
	if diff := cmp.Diff(wantStrengths, got.Strengths); diff != "" {
		t.Errorf("Strengths mismatch (-want +got):\n%s", diff)
	}
}

/* ─── IsBalanced ─────────────────────────────────────────────────────── */

// TestIsBalanced checks the strict threshold and that calories are ignored.
func TestIsBalanced(t *testing.T) {
	cases := []struct {
		name   string
		actual Amounts
		want   bool
	}{
		{"exact", defaultGoals, true},
		{"calories ignored", Amounts{Calories: 5000, ProteinG: 100, CarbsG: 200, FatsG: 65}, true},
		{"protein within", Amounts{Calories: 2000, ProteinG: 110, CarbsG: 200, FatsG: 65}, true},
		{"protein at threshold", Amounts{Calories: 2000, ProteinG: 115, CarbsG: 200, FatsG: 65}, false},
		{"carbs under", Amounts{Calories: 2000, ProteinG: 100, CarbsG: 100, FatsG: 65}, false},
		{"fats over", Amounts{Calories: 2000, ProteinG: 100, CarbsG: 200, FatsG: 90}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBalanced(tc.actual, defaultGoals, DefaultBalanceThreshold); got != tc.want {
				t.Errorf("IsBalanced = %v, want %v", got, tc.want)
			}
		})
	}
}
