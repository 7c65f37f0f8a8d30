package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/nutriai-go-api/nutriscore"
)

// scoreDay grades ad-hoc totals against the supplied goals, or the defaults
// when none are given.
// POST /api/nutrition/score.
func (h *Handler) scoreDay(c *gin.Context) {
	var body scoreRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	goals := defaultGoals
	if body.Goals != nil {
		goals = *body.Goals
	}

	score := nutriscore.CalculateDailyScore(body.Actual, goals)
	observeScore(scoreSourceAdHoc, score.TotalScore)

	c.JSON(http.StatusOK, gin.H{
		"score":       score,
		"feedback":    nutriscore.BuildFeedback(body.Actual, goals),
		"is_balanced": nutriscore.IsBalanced(body.Actual, goals, nutriscore.DefaultBalanceThreshold),
		"goals":       goals,
	})
}

// recommendGoals derives daily targets from the submitted biometrics.
// POST /api/nutrition/goals.
func (h *Handler) recommendGoals(c *gin.Context) {
	var body goalsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	goals := nutriscore.RecommendedGoals(body.Age, body.Weight, body.Height,
		activityKey(body.ActivityLevel), goalKey(body.Goal))
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}
