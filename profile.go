package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lg/nutriai-go-api/nutriscore"
)

// loadUser fetches the authenticated user's row. On failure it writes the
// error response (404 for a missing user) and returns ok=false.
func (h *Handler) loadUser(c *gin.Context, userID uuid.UUID) (user, bool) {
	u, err := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE id = @userID",
		pgx.NamedArgs{"userID": userID})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "User not found")
		return user{}, false
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Server error")
		return user{}, false
	}
	return u, true
}

// loadGoals resolves the daily goals for userID from their profile.
func (h *Handler) loadGoals(c *gin.Context, userID uuid.UUID) (nutriscore.Amounts, bool) {
	u, ok := h.loadUser(c, userID)
	if !ok {
		return nutriscore.Amounts{}, false
	}
	goals, _ := goalsForUser(u)
	return goals, true
}

// getProfile returns the authenticated user without the password hash.
// GET /api/auth/profile.
func (h *Handler) getProfile(c *gin.Context) {
	u, ok := h.loadUser(c, currentUserID(c))
	if !ok {
		return
	}
	u.HealthData = u.HealthData.withDefaults()
	c.JSON(http.StatusOK, u)
}

// getProfileGoals returns the goals the engine scores this user against.
// GET /api/auth/goals. is_default is true when the profile lacks age, height or weight.
func (h *Handler) getProfileGoals(c *gin.Context) {
	u, ok := h.loadUser(c, currentUserID(c))
	if !ok {
		return
	}
	goals, isDefault := goalsForUser(u)
	c.JSON(http.StatusOK, gin.H{"goals": goals, "is_default": isDefault})
}

// patchProfile updates only the provided profile fields.
// PATCH /api/auth/profile. Uses pointer fields in the request body to
// distinguish "not provided" from zero. health_data replaces the stored
// document as a whole.
func (h *Handler) patchProfile(c *gin.Context) {
	userID := currentUserID(c)

	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	// An unknown level would silently fall back to the default multiplier.
	if body.HealthData != nil && body.HealthData.ActivityLevel != "" &&
		!validActivityLevel(body.HealthData.ActivityLevel) {
		apiError(c, http.StatusBadRequest, "activity_level must be one of: "+strings.Join(profileActivityLevels, ", "))
		return
	}

	// Only update fields the client actually sent.
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}

	if body.Name != nil {
		setClauses = append(setClauses, "name = @name")
		args["name"] = strings.TrimSpace(*body.Name)
	}
	if body.Age != nil {
		setClauses = append(setClauses, "age = @age")
		args["age"] = *body.Age
	}
	if body.Gender != nil {
		setClauses = append(setClauses, "gender = @gender")
		args["gender"] = *body.Gender
	}
	if body.Height != nil {
		setClauses = append(setClauses, "height_cm = @heightCM")
		args["heightCM"] = *body.Height
	}
	if body.Weight != nil {
		setClauses = append(setClauses, "weight_kg = @weightKG")
		args["weightKG"] = *body.Weight
	}
	if body.HealthData != nil {
		hd, err := marshalJSONB(body.HealthData.withDefaults())
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid health_data")
			return
		}
		setClauses = append(setClauses, "health_data = @healthData::jsonb")
		args["healthData"] = hd
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	query := "UPDATE users SET " +
		strings.Join(setClauses, ", ") +
		", updated_at = now() WHERE id = @userID RETURNING *"

	u, err := queryOne[user](h.db, c, query, args)
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, u)
}
