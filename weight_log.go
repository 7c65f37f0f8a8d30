package main

import (
	"context"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// getWeightLog returns weigh-ins within [start, end] and the trend across them.
// GET /api/weight-log?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) getWeightLog(c *gin.Context) {
	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	entries, err := queryMany[weightEntry](h.db, c,
		`SELECT * FROM weight_log
		 WHERE user_id = @userID AND date BETWEEN @start AND @end
		 ORDER BY date`,
		pgx.NamedArgs{"userID": currentUserID(c), "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return
	}

	c.JSON(http.StatusOK, buildWeightLog(entries))
}

// buildWeightLog wraps date-ordered entries with first/latest/change stats.
// Changes are rounded to 0.1 kg.
func buildWeightLog(entries []weightEntry) weightLogResponse {
	if entries == nil {
		entries = []weightEntry{}
	}
	resp := weightLogResponse{Entries: entries}
	resp.Trend.Count = len(entries)
	if len(entries) == 0 {
		return resp
	}
	first, latest := entries[0].WeightKG, entries[len(entries)-1].WeightKG
	resp.Trend.StartKG = &first
	resp.Trend.LatestKG = &latest
	resp.Trend.ChangeKG = math.Round((latest-first)*10) / 10
	return resp
}

// upsertWeightEntry records a weigh-in; posting the same date again replaces it.
// POST /api/weight-log {date?, weight_kg}. date defaults to today.
func (h *Handler) upsertWeightEntry(c *gin.Context) {
	userID := currentUserID(c)

	var body weightEntryRequest
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

	entry, err := queryOne[weightEntry](h.db, c,
		`INSERT INTO weight_log (user_id, date, weight_kg)
		 VALUES (@userID, @date, @weightKG)
		 ON CONFLICT (user_id, date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "date": body.Date, "weightKG": body.WeightKG})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save weight entry")
		return
	}

	h.syncProfileWeight(c, userID)
	c.JSON(http.StatusCreated, entry)
}

// deleteWeightEntry removes one of the caller's weigh-ins.
// DELETE /api/weight-log/:id. 204 on success.
func (h *Handler) deleteWeightEntry(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusNotFound, "weight entry not found")
		return
	}

	tag, err := h.db.Exec(c,
		"DELETE FROM weight_log WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete weight entry")
		return
	}
	if tag.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "weight entry not found")
		return
	}

	h.syncProfileWeight(c, userID)
	c.Status(http.StatusNoContent)
}

// syncProfileWeight copies the latest logged weight onto users.weight_kg so
// recommended goals follow the scale. An empty log leaves the profile as is.
// The weigh-in is already saved, so failures are only logged.
func (h *Handler) syncProfileWeight(ctx context.Context, userID uuid.UUID) {
	_, err := h.db.Exec(ctx,
		`UPDATE users SET weight_kg = latest.weight_kg, updated_at = now()
		 FROM (SELECT weight_kg FROM weight_log WHERE user_id = @userID ORDER BY date DESC LIMIT 1) AS latest
		 WHERE users.id = @userID`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		log.Printf("[syncProfileWeight] user %s: %v", userID, err)
	}
}
