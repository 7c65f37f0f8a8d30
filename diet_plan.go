package main

import (
	"errors"
	"log"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lg/nutriai-go-api/nutriscore"
)

// generateDietPlan builds a week of meals for the submitted inputs, scores it,
// and stores it as an Active plan.
// POST /api/diet/generate.
func (h *Handler) generateDietPlan(c *gin.Context) {
	userID := currentUserID(c)

	var in planInputs
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	if in.DietaryPreferences == nil {
		in.DietaryPreferences = []string{}
	}
	if in.PantryItems == nil {
		in.PantryItems = []string{}
	}

	goals := goalsForInputs(in)
	week := generateMockWeek(in.PantryItems)

	summary, err := h.analyzer.Summarize(c.Request.Context(), in)
	if err != nil {
		log.Printf("[generateDietPlan] analyzer failed: %v", err)
		apiError(c, http.StatusInternalServerError, "Server error generating plan")
		return
	}
	analysis := planAnalysis{
		MissingNutrients: slices.Clone(missingNutrients),
		HealthScore:      nutriscore.WeeklyAverage(dayScores(week, goals)),
		Summary:          summary,
	}

	args := pgx.NamedArgs{"id": uuid.New(), "userID": userID}
	for name, v := range map[string]any{"inputs": in, "analysis": analysis, "goals": goals, "weeklyPlan": week} {
		encoded, err := marshalJSONB(v)
		if err != nil {
			log.Printf("[generateDietPlan] encode %s: %v", name, err)
			apiError(c, http.StatusInternalServerError, "Server error generating plan")
			return
		}
		args[name] = encoded
	}

	p, err := queryOne[dietPlan](h.db, c,
		`INSERT INTO diet_plans (id, user_id, inputs, analysis, goals, weekly_plan)
		 VALUES (@id, @userID, @inputs::jsonb, @analysis::jsonb, @goals::jsonb, @weeklyPlan::jsonb)
		 RETURNING *`, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Server error generating plan")
		return
	}

	plansGenerated.Inc()
	scored := scorePlan(p)
	for _, d := range scored.WeeklyPlan {
		observeScore(scoreSourcePlan, d.NutritionScore)
	}
	c.JSON(http.StatusCreated, scored)
}

// getMyPlans lists the user's plans, newest first.
// GET /api/diet/my-plans.
func (h *Handler) getMyPlans(c *gin.Context) {
	plans, err := queryMany[dietPlan](h.db, c,
		"SELECT * FROM diet_plans WHERE user_id = @userID ORDER BY created_at DESC",
		pgx.NamedArgs{"userID": currentUserID(c)})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Error fetching plans")
		return
	}
	if plans == nil {
		plans = []dietPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// loadPlan fetches plan :id owned by the authenticated user. Unknown ids,
// malformed ids and plans owned by someone else all respond 404.
func (h *Handler) loadPlan(c *gin.Context) (dietPlan, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusNotFound, "Diet plan not found")
		return dietPlan{}, false
	}
	p, err := queryOne[dietPlan](h.db, c,
		"SELECT * FROM diet_plans WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": currentUserID(c)})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "Diet plan not found")
		return dietPlan{}, false
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Server error")
		return dietPlan{}, false
	}
	return p, true
}

// planDayParam resolves the zero-based :day index against p's week.
func planDayParam(c *gin.Context, p dietPlan) (planDay, bool) {
	i, err := strconv.Atoi(c.Param("day"))
	if err != nil || i < 0 || i >= len(p.WeeklyPlan) {
		apiError(c, http.StatusNotFound, "Day not found")
		return planDay{}, false
	}
	return p.WeeklyPlan[i], true
}

// getPlanWithScores returns a plan with every day scored.
// GET /api/diet/plans/:id.
func (h *Handler) getPlanWithScores(c *gin.Context) {
	p, ok := h.loadPlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, scorePlan(p))
}

// getPlanWeeklyAverage returns each day's total score and their rounded mean.
// GET /api/diet/plans/:id/weekly-average.
func (h *Handler) getPlanWeeklyAverage(c *gin.Context) {
	p, ok := h.loadPlan(c)
	if !ok {
		return
	}
	scores := dayScores(p.WeeklyPlan, p.Goals)
	c.JSON(http.StatusOK, gin.H{
		"plan_id":              p.ID,
		"daily_scores":         scores,
		"weekly_average_score": nutriscore.WeeklyAverage(scores),
	})
}

// getDayFeedback returns score, feedback and balance for one day of a plan.
// GET /api/diet/plans/:id/days/:day/feedback.
func (h *Handler) getDayFeedback(c *gin.Context) {
	p, ok := h.loadPlan(c)
	if !ok {
		return
	}
	d, ok := planDayParam(c, p)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, planDayFeedback(p, d))
}

// getDayBalance reports whether a plan day is within the default balance threshold.
// GET /api/diet/plans/:id/days/:day/balance.
func (h *Handler) getDayBalance(c *gin.Context) {
	p, ok := h.loadPlan(c)
	if !ok {
		return
	}
	d, ok := planDayParam(c, p)
	if !ok {
		return
	}
	actual := nutriscore.TotalsFromMeals(d.Meals)
	c.JSON(http.StatusOK, gin.H{
		"day":         d.Day,
		"is_balanced": nutriscore.IsBalanced(actual, p.Goals, nutriscore.DefaultBalanceThreshold),
		"threshold":   nutriscore.DefaultBalanceThreshold,
	})
}

// updatePlanStatus moves a plan between Active, Completed and Archived.
// PATCH /api/diet/plans/:id/status.
func (h *Handler) updatePlanStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusNotFound, "Diet plan not found")
		return
	}

	var body planStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	p, err := queryOne[dietPlan](h.db, c,
		`UPDATE diet_plans SET status = @status, updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{"id": id, "userID": currentUserID(c), "status": body.Status})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "Diet plan not found")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update plan")
		return
	}

	c.JSON(http.StatusOK, p)
}
