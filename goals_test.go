package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"lg/nutriai-go-api/nutriscore"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

/* ─── Label normalization ────────────────────────────────────────────── */

// TestActivityKey verifies that profile labels map onto multiplier keys.
func TestActivityKey(t *testing.T) {
	cases := map[string]string{
		"Sedentary":   "sedentary",
		"Very Active": "very_active",
		" moderate ":  "moderate",
		"very_active": "very_active",
		"":            "",
	}
	for in, want := range cases {
		if got := activityKey(in); got != want {
			t.Errorf("activityKey(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestValidActivityLevel verifies every profile label is accepted and unknown
// labels are rejected.
func TestValidActivityLevel(t *testing.T) {
	for _, level := range profileActivityLevels {
		if !validActivityLevel(level) {
			t.Errorf("validActivityLevel(%q) = false, want true", level)
		}
	}
	for _, level := range []string{"", "Couch", "extreme"} {
		if validActivityLevel(level) {
			t.Errorf("validActivityLevel(%q) = true, want false", level)
		}
	}
}

// TestGoalKey verifies free-text goals resolve to lose/gain/maintain and that
// the first weight-related goal wins.
func TestGoalKey(t *testing.T) {
	cases := []struct {
		name  string
		goals []string
		want  string
	}{
		{"none", nil, nutriscore.GoalMaintain},
		{"lose weight", []string{"Lose Weight"}, nutriscore.GoalLose},
		{"build muscle", []string{"Build Muscle"}, nutriscore.GoalGain},
		{"raw key", []string{"gain"}, nutriscore.GoalGain},
		{"unrelated then lose", []string{"Sleep Better", "lose"}, nutriscore.GoalLose},
		{"first wins", []string{"Gain Weight", "Lose Weight"}, nutriscore.GoalGain},
		{"unknown", []string{"Eat Healthier"}, nutriscore.GoalMaintain},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := goalKey(tc.goals...); got != tc.want {
				t.Errorf("goalKey(%v) = %q, want %q", tc.goals, got, tc.want)
			}
		})
	}
}

/* ─── Goal resolution ────────────────────────────────────────────────── */

// TestGoalsForUser_MissingBiometrics verifies the defaults are used whenever
// age, weight or height is missing or non-positive.
func TestGoalsForUser_MissingBiometrics(t *testing.T) {
	cases := []struct {
		name string
		u    user
	}{
		{"empty profile", user{}},
		{"nil age", user{WeightKG: floatPtr(70), HeightCM: floatPtr(175)}},
		{"nil weight", user{Age: intPtr(30), HeightCM: floatPtr(175)}},
		{"nil height", user{Age: intPtr(30), WeightKG: floatPtr(70)}},
		{"zero weight", user{Age: intPtr(30), WeightKG: floatPtr(0), HeightCM: floatPtr(175)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			goals, isDefault := goalsForUser(tc.u)
			if !isDefault {
				t.Error("isDefault = false, want true")
			}
			if diff := cmp.Diff(defaultGoals, goals); diff != "" {
				t.Errorf("goals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestGoalsForUser_Recommended verifies a complete profile yields the
// Mifflin-St Jeor targets with the stored activity label normalized.
func TestGoalsForUser_Recommended(t *testing.T) {
	u := user{
		Age: intPtr(30), WeightKG: floatPtr(70), HeightCM: floatPtr(175),
		Gender:     strPtr("Female"),
		HealthData: healthData{ActivityLevel: "Sedentary"},
	}
	goals, isDefault := goalsForUser(u)
	if isDefault {
		t.Error("isDefault = true, want false")
	}
	want := nutriscore.Amounts{Calories: 1979, ProteinG: 148, CarbsG: 198, FatsG: 66}
	if diff := cmp.Diff(want, goals); diff != "" {
		t.Errorf("goals mismatch (-want +got):\n%s", diff)
	}
}

// TestGoalsForInputs verifies plan inputs use the same derivation, including
// the weight-loss deficit, and fall back to defaults without biometrics.
func TestGoalsForInputs(t *testing.T) {
	in := planInputs{Age: 30, Weight: 70, Height: 175, ActivityLevel: "Sedentary", Goal: "Lose Weight"}
	want := nutriscore.Amounts{Calories: 1479, ProteinG: 111, CarbsG: 148, FatsG: 49}
	if diff := cmp.Diff(want, goalsForInputs(in)); diff != "" {
		t.Errorf("goals mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(defaultGoals, goalsForInputs(planInputs{Weight: 70, Height: 175})); diff != "" {
		t.Errorf("default goals mismatch (-want +got):\n%s", diff)
	}
}

/* ─── Week helpers ───────────────────────────────────────────────────── */

// TestCurrentMonday_ReturnsMonday verifies that the returned time's weekday is Monday.
func TestCurrentMonday_ReturnsMonday(t *testing.T) {
	monday := currentMonday()
	if monday.Weekday() != time.Monday {
		t.Errorf("currentMonday() returned %s, want Monday", monday.Weekday())
	}
}

// TestCurrentMonday_MidnightUTC verifies that the returned time is at midnight
// UTC with no hour, minute, second, or nanosecond component.
func TestCurrentMonday_MidnightUTC(t *testing.T) {
	monday := currentMonday()
	if monday.Hour() != 0 || monday.Minute() != 0 || monday.Second() != 0 || monday.Nanosecond() != 0 {
		t.Errorf("currentMonday() returned non-midnight time: %v", monday)
	}
	if monday.Location() != time.UTC {
		t.Errorf("currentMonday() returned non-UTC location: %v", monday.Location())
	}
}

// TestMondayOf covers mid-week, Monday itself, and Sunday across a month boundary.
func TestMondayOf(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC), "2026-10-12"}, // Saturday
		{time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), "2026-10-12"},   // Monday
		{time.Date(2026, 11, 1, 23, 59, 0, 0, time.UTC), "2026-10-26"},  // Sunday
	}
	for _, tc := range cases {
		if got := mondayOf(tc.in).Format("2006-01-02"); got != tc.want {
			t.Errorf("mondayOf(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
