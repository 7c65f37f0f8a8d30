package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/nutriai-go-api/nutriscore"
)

// mealDaySQL aggregates one row per logged date within [@start, @end].
const mealDaySQL = `SELECT
		date,
		COALESCE(SUM(calories),  0) AS calories,
		COALESCE(SUM(protein_g), 0) AS protein_g,
		COALESCE(SUM(carbs_g),   0) AS carbs_g,
		COALESCE(SUM(fats_g),    0) AS fats_g
	 FROM meal_log_items
	 WHERE user_id = @userID AND date >= @start AND date <= @end
	 GROUP BY date
	 ORDER BY date ASC`

// totals converts an aggregated row into engine amounts.
func (r weekDayDBRow) totals() nutriscore.Amounts {
	return nutriscore.Amounts{Calories: r.Calories, ProteinG: r.ProteinG, CarbsG: r.CarbsG, FatsG: r.FatsG}
}

// getDailySummary returns meal log items for a date, with their totals scored
// against the user's goals.
// GET /api/meal-log/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	userID := currentUserID(c)
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	// An invalid date would silently match no rows.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := queryMany[mealLogItem](h.db, c,
		`SELECT * FROM meal_log_items
		 WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch items")
		return
	}
	// Ensure items is an empty array (not null) in JSON
	if items == nil {
		items = []mealLogItem{}
	}

	goals, ok := h.loadGoals(c, userID)
	if !ok {
		return
	}

	summary := buildDailySummary(date, items, goals)
	if len(items) > 0 {
		observeScore(scoreSourceMealLog, summary.Score.TotalScore)
	}
	c.JSON(http.StatusOK, summary)
}

// buildDailySummary totals and scores one day of logged items.
func buildDailySummary(date string, items []mealLogItem, goals nutriscore.Amounts) dailySummary {
	meals := make([]nutriscore.Meal, 0, len(items))
	for _, item := range items {
		meals = append(meals, item.meal())
	}
	totals := nutriscore.TotalsFromMeals(meals)

	return dailySummary{
		Date:       date,
		Items:      items,
		Totals:     totals,
		Goals:      goals,
		Score:      nutriscore.CalculateDailyScore(totals, goals),
		Feedback:   nutriscore.BuildFeedback(totals, goals),
		IsBalanced: nutriscore.IsBalanced(totals, goals, nutriscore.DefaultBalanceThreshold),
	}
}

// getWeekSummary returns per-day totals and scores for the Mon–Sun week
// starting at week_start. Days with no logged items are included with
// has_data=false and are left out of the weekly average.
// GET /api/meal-log/week-summary?week_start=YYYY-MM-DD (defaults to current week).
func (h *Handler) getWeekSummary(c *gin.Context) {
	userID := currentUserID(c)

	// Parse week_start; default to the current Monday.
	var weekStart time.Time
	if s := c.Query("week_start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid week_start, expected YYYY-MM-DD")
			return
		}
		weekStart = t
	} else {
		weekStart = currentMonday()
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	goals, ok := h.loadGoals(c, userID)
	if !ok {
		return
	}

	rows, err := queryMany[weekDayDBRow](h.db, c, mealDaySQL, pgx.NamedArgs{
		"userID": userID,
		"start":  weekStart.Format("2006-01-02"),
		"end":    weekEnd.Format("2006-01-02"),
	})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch week data")
		return
	}

	c.JSON(http.StatusOK, buildWeekSummary(weekStart, rows, goals))
}

// buildWeekSummary fills a full 7-day window from the aggregated rows.
func buildWeekSummary(weekStart time.Time, rows []weekDayDBRow, goals nutriscore.Amounts) weekSummary {
	// Index DB rows by date string for O(1) merge.
	rowByDate := make(map[string]weekDayDBRow, len(rows))
	for _, r := range rows {
		rowByDate[r.Date.Time.Format("2006-01-02")] = r
	}

	days := make([]weekDaySummary, 7)
	scores := make([]int, 0, 7)
	for i := 0; i < 7; i++ {
		d := weekStart.AddDate(0, 0, i)
		day := weekDaySummary{Date: DateOnly{d}}
		if row, ok := rowByDate[d.Format("2006-01-02")]; ok {
			day.HasData = true
			day.Totals = row.totals()
			score := nutriscore.CalculateDailyScore(day.Totals, goals)
			day.Score = &score
			scores = append(scores, score.TotalScore)
		}
		days[i] = day
	}

	return weekSummary{
		Days:               days,
		Goals:              goals,
		WeeklyAverageScore: nutriscore.WeeklyAverage(scores),
	}
}

// getProgress returns scored per-day totals and aggregate stats for an arbitrary date range.
// GET /api/meal-log/progress?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Only days with logged items are returned.
func (h *Handler) getProgress(c *gin.Context) {
	userID := currentUserID(c)
	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	goals, ok := h.loadGoals(c, userID)
	if !ok {
		return
	}

	rows, err := queryMany[weekDayDBRow](h.db, c, mealDaySQL,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch progress data")
		return
	}

	c.JSON(http.StatusOK, buildProgress(rows, goals))
}

// buildProgress scores each tracked day and summarizes the range.
func buildProgress(rows []weekDayDBRow, goals nutriscore.Amounts) progressResponse {
	days := make([]weekDaySummary, 0, len(rows))
	scores := make([]int, 0, len(rows))
	var stats progressStats
	for _, row := range rows {
		totals := row.totals()
		score := nutriscore.CalculateDailyScore(totals, goals)
		days = append(days, weekDaySummary{
			Date:    row.Date,
			Totals:  totals,
			HasData: true,
			Score:   &score,
		})
		scores = append(scores, score.TotalScore)
		stats.DaysTracked++
		if nutriscore.IsBalanced(totals, goals, nutriscore.DefaultBalanceThreshold) {
			stats.DaysBalanced++
		}
	}
	stats.AverageScore = nutriscore.WeeklyAverage(scores)

	return progressResponse{Days: days, Goals: goals, Stats: stats}
}

// getEarliestLogDate returns the earliest date the user has a meal log entry.
// GET /api/meal-log/earliest-date.
// Returns { "date": "YYYY-MM-DD" } or { "date": null } if no entries exist.
func (h *Handler) getEarliestLogDate(c *gin.Context) {
	userID := currentUserID(c)

	// MIN over no rows is NULL.
	var date *string
	err := h.db.QueryRow(c,
		`SELECT TO_CHAR(MIN(date), 'YYYY-MM-DD') AS date
		 FROM meal_log_items WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID}).Scan(&date)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch earliest date")
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date})
}

// createMealLogItem inserts a new meal log entry.
// POST /api/meal-log/items. Defaults date to today if omitted.
func (h *Handler) createMealLogItem(c *gin.Context) {
	userID := currentUserID(c)

	var body createMealLogItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	item, err := queryOne[mealLogItem](h.db, c,
		`INSERT INTO meal_log_items (user_id, date, name, type, calories, protein_g, carbs_g, fats_g)
		 VALUES (@userID, @date, @name, @type, @calories, @proteinG, @carbsG, @fatsG)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date, "name": body.Name, "type": body.Type,
			"calories": body.Calories, "proteinG": body.ProteinG,
			"carbsG": body.CarbsG, "fatsG": body.FatsG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// updateMealLogItem updates an existing meal log entry.
// PUT /api/meal-log/items/:id. Uses COALESCE so omitted fields keep their current value.
func (h *Handler) updateMealLogItem(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}

	var body updateMealLogItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	if body.Date != nil {
		if _, err := time.Parse("2006-01-02", *body.Date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}

	item, err := queryOne[mealLogItem](h.db, c,
		`UPDATE meal_log_items SET
			date = COALESCE(@date::date, date),
			name = COALESCE(@name, name),
			type = COALESCE(@type, type),
			calories = COALESCE(@calories, calories),
			protein_g = COALESCE(@proteinG, protein_g),
			carbs_g = COALESCE(@carbsG, carbs_g),
			fats_g = COALESCE(@fatsG, fats_g),
			updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"date": body.Date, "name": body.Name, "type": body.Type,
			"calories": body.Calories, "proteinG": body.ProteinG,
			"carbsG": body.CarbsG, "fatsG": body.FatsG,
		})
	if err != nil {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteMealLogItem removes a meal log entry. Returns 204 on success.
// DELETE /api/meal-log/items/:id.
func (h *Handler) deleteMealLogItem(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM meal_log_items WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete item")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}

	c.Status(http.StatusNoContent)
}
