package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"lg/nutriai-go-api/nutriscore"
)

func day(s string) DateOnly {
	t, _ := time.Parse("2006-01-02", s)
	return DateOnly{t}
}

// TestBuildDailySummary verifies logged items are totaled and scored.
func TestBuildDailySummary(t *testing.T) {
	items := []mealLogItem{
		{Name: "Eggs", Type: "breakfast", Calories: 500, ProteinG: 30, CarbsG: 40, FatsG: 20},
		{Name: "Chicken", Type: "lunch", Calories: 900, ProteinG: 45, CarbsG: 80, FatsG: 25},
		{Name: "Pasta", Type: "dinner", Calories: 600, ProteinG: 25, CarbsG: 80, FatsG: 20},
	}
	got := buildDailySummary("2026-10-17", items, defaultGoals)

	if diff := cmp.Diff(defaultGoals, got.Totals); diff != "" {
		t.Errorf("totals mismatch (-want +got):\n%s", diff)
	}
	if got.Score.TotalScore != 100 || !got.IsBalanced || !got.Feedback.IsOptimal {
		t.Errorf("expected a perfect day, got score %d balanced %v", got.Score.TotalScore, got.IsBalanced)
	}
	if got.Date != "2026-10-17" || len(got.Items) != 3 {
		t.Errorf("unexpected summary: %+v", got)
	}
}

// TestBuildDailySummary_Empty verifies a day with nothing logged scores 0.
func TestBuildDailySummary_Empty(t *testing.T) {
	got := buildDailySummary("2026-10-17", []mealLogItem{}, defaultGoals)
	if got.Score.TotalScore != 0 || got.IsBalanced {
		t.Errorf("expected score 0 and unbalanced, got %d/%v", got.Score.TotalScore, got.IsBalanced)
	}
	want := []string{"Not eating enough calories", "Need more protein", "Need more carbs for energy", "Need more healthy fats"}
	if diff := cmp.Diff(want, got.Feedback.Issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

// TestBuildWeekSummary verifies gap-filling and that empty days are left out
// of the weekly average.
func TestBuildWeekSummary(t *testing.T) {
	weekStart := day("2026-10-12").Time
	rows := []weekDayDBRow{
		{Date: day("2026-10-12"), Calories: 2000, ProteinG: 100, CarbsG: 200, FatsG: 65},
		{Date: day("2026-10-14"), Calories: 2600, ProteinG: 100, CarbsG: 200, FatsG: 65},
	}

	got := buildWeekSummary(weekStart, rows, defaultGoals)
	if len(got.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(got.Days))
	}

	var hasData []bool
	for _, d := range got.Days {
		hasData = append(hasData, d.HasData)
		if d.HasData != (d.Score != nil) {
			t.Errorf("%s: has_data=%v but score=%v", d.Date.Format("2006-01-02"), d.HasData, d.Score)
		}
	}
	if diff := cmp.Diff([]bool{true, false, true, false, false, false, false}, hasData); diff != "" {
		t.Errorf("has_data mismatch (-want +got):\n%s", diff)
	}
	if got.Days[6].Date.Format("2006-01-02") != "2026-10-18" {
		t.Errorf("last day = %s, want 2026-10-18", got.Days[6].Date.Format("2006-01-02"))
	}
	// (100 + 93) / 2 = 96.5
	if got.WeeklyAverageScore != 97 {
		t.Errorf("weekly_average_score = %d, want 97", got.WeeklyAverageScore)
	}
}

// TestBuildProgress verifies per-day scores and range stats.
func TestBuildProgress(t *testing.T) {
	rows := []weekDayDBRow{
		{Date: day("2026-10-01"), Calories: 2000, ProteinG: 100, CarbsG: 200, FatsG: 65},
		{Date: day("2026-10-05"), Calories: 2000, ProteinG: 130, CarbsG: 200, FatsG: 65},
		{Date: day("2026-10-09"), Calories: 1000, ProteinG: 50, CarbsG: 100, FatsG: 32.5},
	}

	got := buildProgress(rows, defaultGoals)
	if len(got.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(got.Days))
	}
	// Scores: 100, 92.5 → 93, 50.
	want := progressStats{DaysTracked: 3, DaysBalanced: 1, AverageScore: 81}
	if diff := cmp.Diff(want, got.Stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

// TestBuildProgress_Empty verifies an empty range reports zeroes.
func TestBuildProgress_Empty(t *testing.T) {
	got := buildProgress(nil, defaultGoals)
	if len(got.Days) != 0 || got.Stats != (progressStats{}) {
		t.Errorf("expected empty progress, got %+v", got)
	}
}

// TestMealLogItem_Meal verifies a logged item converts to the engine shape.
func TestMealLogItem_Meal(t *testing.T) {
	item := mealLogItem{ID: 7, Name: "Toast", Type: "snack", Calories: 120, ProteinG: 4, CarbsG: 20, FatsG: 2}
	want := nutriscore.Meal{Type: "snack", Name: "Toast", Calories: 120, ProteinG: 4, CarbsG: 20, FatsG: 2}
	if diff := cmp.Diff(want, item.meal()); diff != "" {
		t.Errorf("meal mismatch (-want +got):\n%s", diff)
	}
}
