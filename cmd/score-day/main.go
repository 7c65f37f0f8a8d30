// CLI tool to score a day of meals without running the API.
// Reads a JSON array of meals from --file (or stdin) and prints totals, score
// and feedback as indented JSON.
// Usage: go run ./cmd/score-day --file meals.json [--calories 2000 --protein 100 --carbs 200 --fats 65]
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"lg/nutriai-go-api/nutriscore"
)

// report is what gets printed.
type report struct {
	Totals     nutriscore.Amounts  `json:"totals"`
	Goals      nutriscore.Amounts  `json:"goals"`
	Score      nutriscore.Score    `json:"score"`
	Feedback   nutriscore.Feedback `json:"feedback"`
	IsBalanced bool                `json:"is_balanced"`
}

func main() {
	file := flag.StringP("file", "f", "", "JSON file with an array of meals (default: stdin)")
	goals := nutriscore.Amounts{}
	flag.Float64Var(&goals.Calories, "calories", 2000, "daily calorie goal")
	flag.Float64Var(&goals.ProteinG, "protein", 100, "daily protein goal (g)")
	flag.Float64Var(&goals.CarbsG, "carbs", 200, "daily carbs goal (g)")
	flag.Float64Var(&goals.FatsG, "fats", 65, "daily fats goal (g)")
	threshold := flag.Float64("threshold", nutriscore.DefaultBalanceThreshold, "balance threshold as a fraction of each goal")
	flag.Parse()

	in := io.Reader(os.Stdin)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", *file, err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	meals, err := readMeals(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading meals: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(buildReport(meals, goals, *threshold)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
}

// readMeals decodes a JSON array of meals.
func readMeals(r io.Reader) ([]nutriscore.Meal, error) {
	var meals []nutriscore.Meal
	if err := json.NewDecoder(r).Decode(&meals); err != nil {
		return nil, fmt.Errorf("decode meals: %w", err)
	}
	return meals, nil
}

func buildReport(meals []nutriscore.Meal, goals nutriscore.Amounts, threshold float64) report {
	totals := nutriscore.TotalsFromMeals(meals)
	return report{
		Totals:     totals,
		Goals:      goals,
		Score:      nutriscore.CalculateDailyScore(totals, goals),
		Feedback:   nutriscore.BuildFeedback(totals, goals),
		IsBalanced: nutriscore.IsBalanced(totals, goals, threshold),
	}
}
