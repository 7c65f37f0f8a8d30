package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"lg/nutriai-go-api/nutriscore"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Users ──────────────────────────────────────────────────────────── */

// user maps to the users table. PasswordHash is hidden from JSON responses.
// Body measurements are nullable; registration only requires email, password and name.
type user struct {
	ID           uuid.UUID  `json:"id"          db:"id"`
	Email        string     `json:"email"       db:"email"`
	PasswordHash string     `json:"-"           db:"password_hash"`
	Name         string     `json:"name"        db:"name"`
	Age          *int       `json:"age"         db:"age"`
	Gender       *string    `json:"gender"      db:"gender"`
	HeightCM     *float64   `json:"height"      db:"height_cm"`
	WeightKG     *float64   `json:"weight"      db:"weight_kg"`
	HealthData   healthData `json:"health_data" db:"health_data"`
	CreatedAt    *time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"  db:"updated_at"`
}

// healthData is stored as JSONB on the users row.
type healthData struct {
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	ActivityLevel      string   `json:"activity_level"`
	MedicalConditions  []string `json:"medical_conditions"`
	Goals              []string `json:"goals"`
	SleepPattern       string   `json:"sleep_pattern"`
	WaterIntakeGoal    float64  `json:"water_intake_goal"` // liters
}

// withDefaults fills fields left empty on registration.
func (h healthData) withDefaults() healthData {
	if h.DietaryPreferences == nil {
		h.DietaryPreferences = []string{}
	}
	if h.Allergies == nil {
		h.Allergies = []string{}
	}
	if h.ActivityLevel == "" {
		h.ActivityLevel = "Moderate"
	}
	if h.MedicalConditions == nil {
		h.MedicalConditions = []string{}
	}
	if h.Goals == nil {
		h.Goals = []string{}
	}
	if h.WaterIntakeGoal == 0 {
		h.WaterIntakeGoal = 2.5
	}
	return h
}

// userSummary is the public slice of a user returned alongside a token.
type userSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// authResponse is returned by register and login.
type authResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

/* ─── Diet plans ─────────────────────────────────────────────────────── */

// dietPlan maps to diet_plans. Inputs, analysis, goals and the week are JSONB.
type dietPlan struct {
	ID         uuid.UUID          `json:"id"          db:"id"`
	UserID     uuid.UUID          `json:"user_id"     db:"user_id"`
	Status     string             `json:"status"      db:"status"`
	Inputs     planInputs         `json:"inputs"      db:"inputs"`
	Analysis   planAnalysis       `json:"analysis"    db:"analysis"`
	Goals      nutriscore.Amounts `json:"goals"       db:"goals"`
	WeeklyPlan []planDay          `json:"weekly_plan" db:"weekly_plan"`
	CreatedAt  *time.Time         `json:"created_at"  db:"created_at"`
	UpdatedAt  *time.Time         `json:"updated_at"  db:"updated_at"`
}

// planInputs is the snapshot of what the user asked for. It doubles as the
// request body for POST /api/diet/generate.
type planInputs struct {
	Age                float64  `json:"age"                 binding:"gte=0,lte=130"`
	Weight             float64  `json:"weight"              binding:"gte=0,lte=700"`
	Height             float64  `json:"height"              binding:"gte=0,lte=300"`
	SleepHours         float64  `json:"sleep_hours"         binding:"gte=0,lte=24"`
	WaterGoal          float64  `json:"water_goal"          binding:"gte=0"`
	ActivityLevel      string   `json:"activity_level"`
	DietaryPreferences []string `json:"dietary_preferences"`
	PantryItems        []string `json:"pantry_items"`
	Goal               string   `json:"goal"`
}

// planAnalysis is the generator's assessment of the inputs.
type planAnalysis struct {
	MissingNutrients []string `json:"missing_nutrients"`
	HealthScore      int      `json:"health_score"` // 0-100
	Summary          string   `json:"summary"`
}

// planDay is one stored day of a weekly plan.
type planDay struct {
	Day   string            `json:"day"`
	Meals []nutriscore.Meal `json:"meals"`
}

// scoredDay is a planDay enriched with its totals, score and feedback.
type scoredDay struct {
	Day            string            `json:"day"`
	Meals          []nutriscore.Meal `json:"meals"`
	TotalCalories  float64           `json:"total_calories"`
	TotalProtein   float64           `json:"total_protein"`
	TotalCarbs     float64           `json:"total_carbs"`
	TotalFats      float64           `json:"total_fats"`
	NutritionScore int               `json:"nutrition_score"`
	CalorieScore   int               `json:"calorie_score"`
	ProteinScore   int               `json:"protein_score"`
	CarbsScore     int               `json:"carbs_score"`
	FatsScore      int               `json:"fats_score"`
	Category       string            `json:"category"`
	Color          string            `json:"color"`
	Emoji          string            `json:"emoji"`
	Feedback       string            `json:"feedback"`
	Issues         []string          `json:"issues"`
	Strengths      []string          `json:"strengths"`
	IsOptimal      bool              `json:"is_optimal"`
}

// scoredPlan is the response shape for a plan with per-day scores.
type scoredPlan struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             uuid.UUID          `json:"user_id"`
	Status             string             `json:"status"`
	Inputs             planInputs         `json:"inputs"`
	Analysis           planAnalysis       `json:"analysis"`
	Goals              nutriscore.Amounts `json:"goals"`
	WeeklyPlan         []scoredDay        `json:"weekly_plan"`
	WeeklyAverageScore int                `json:"weekly_average_score"`
	CreatedAt          *time.Time         `json:"created_at"`
	UpdatedAt          *time.Time         `json:"updated_at"`
}

// dayFeedback is the response for GET /api/diet/plans/:id/days/:day/feedback.
type dayFeedback struct {
	Day        string              `json:"day"`
	Score      nutriscore.Score    `json:"score"`
	Feedback   nutriscore.Feedback `json:"feedback"`
	Actual     nutriscore.Amounts  `json:"actual"`
	Goals      nutriscore.Amounts  `json:"goals"`
	IsBalanced bool                `json:"is_balanced"`
}

/* ─── Meal log ───────────────────────────────────────────────────────── */

// mealLogItem maps to meal_log_items.
type mealLogItem struct {
	ID        int        `json:"id"         db:"id"`
	UserID    uuid.UUID  `json:"user_id"    db:"user_id"`
	Date      DateOnly   `json:"date"       db:"date"`
	Name      string     `json:"name"       db:"name"`
	Type      string     `json:"type"       db:"type"`
	Calories  float64    `json:"calories"   db:"calories"`
	ProteinG  float64    `json:"protein_g"  db:"protein_g"`
	CarbsG    float64    `json:"carbs_g"    db:"carbs_g"`
	FatsG     float64    `json:"fats_g"     db:"fats_g"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// meal converts a logged item into the engine's meal shape.
func (i mealLogItem) meal() nutriscore.Meal {
	return nutriscore.Meal{
		Type:     i.Type,
		Name:     i.Name,
		Calories: i.Calories,
		ProteinG: i.ProteinG,
		CarbsG:   i.CarbsG,
		FatsG:    i.FatsG,
	}
}

// weekDayDBRow is the shape of each row returned by the week-summary GROUP BY query.
type weekDayDBRow struct {
	Date     DateOnly `db:"date"`
	Calories float64  `db:"calories"`
	ProteinG float64  `db:"protein_g"`
	CarbsG   float64  `db:"carbs_g"`
	FatsG    float64  `db:"fats_g"`
}

// dailySummary is the response shape for GET /api/meal-log/daily.
type dailySummary struct {
	Date       string              `json:"date"`
	Items      []mealLogItem       `json:"items"`
	Totals     nutriscore.Amounts  `json:"totals"`
	Goals      nutriscore.Amounts  `json:"goals"`
	Score      nutriscore.Score    `json:"score"`
	Feedback   nutriscore.Feedback `json:"feedback"`
	IsBalanced bool                `json:"is_balanced"`
}

// weekDaySummary is one day of GET /api/meal-log/week-summary.
// Days with no logged items have HasData=false and no score.
type weekDaySummary struct {
	Date    DateOnly           `json:"date"`
	Totals  nutriscore.Amounts `json:"totals"`
	HasData bool               `json:"has_data"`
	Score   *nutriscore.Score  `json:"score,omitempty"`
}

// weekSummary is the response shape for GET /api/meal-log/week-summary.
type weekSummary struct {
	Days               []weekDaySummary   `json:"days"`
	Goals              nutriscore.Amounts `json:"goals"`
	WeeklyAverageScore int                `json:"weekly_average_score"`
}

// progressStats summarizes the tracked days of a date range.
type progressStats struct {
	DaysTracked  int `json:"days_tracked"`
	DaysBalanced int `json:"days_balanced"`
	AverageScore int `json:"average_score"`
}

// progressResponse is the response shape for GET /api/meal-log/progress.
type progressResponse struct {
	Days  []weekDaySummary   `json:"days"`
	Goals nutriscore.Amounts `json:"goals"`
	Stats progressStats      `json:"stats"`
}

/* ─── Weight log ─────────────────────────────────────────────────────── */

// weightEntry maps to weight_log. One entry per user per date.
type weightEntry struct {
	ID        int        `json:"id"         db:"id"`
	UserID    uuid.UUID  `json:"user_id"    db:"user_id"`
	Date      DateOnly   `json:"date"       db:"date"`
	WeightKG  float64    `json:"weight_kg"  db:"weight_kg"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// weightTrend summarizes the entries of a weight-log range. StartKG and
// LatestKG are null when the range is empty.
type weightTrend struct {
	Count    int      `json:"count"`
	StartKG  *float64 `json:"start_kg"`
	LatestKG *float64 `json:"latest_kg"`
	ChangeKG float64  `json:"change_kg"`
}

// weightLogResponse is the response shape for GET /api/weight-log.
type weightLogResponse struct {
	Entries []weightEntry `json:"entries"`
	Trend   weightTrend   `json:"trend"`
}

/* ─── Request bodies ─────────────────────────────────────────────────── */

// registerRequest is the request body for POST /api/auth/register.
type registerRequest struct {
	Email      string      `json:"email"       binding:"required,email"`
	Password   string      `json:"password"    binding:"required,min=6"`
	Name       string      `json:"name"        binding:"required"`
	Age        *int        `json:"age"         binding:"omitempty,gte=0,lte=130"`
	Gender     *string     `json:"gender"      binding:"omitempty,oneof=Male Female Other"`
	Height     *float64    `json:"height"      binding:"omitempty,gt=0"`
	Weight     *float64    `json:"weight"      binding:"omitempty,gt=0"`
	HealthData *healthData `json:"health_data"`
}

// loginRequest is the request body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// patchProfileRequest is the request body for PATCH /api/auth/profile.
// All fields are pointers; only non-nil fields get written.
type patchProfileRequest struct {
	Name       *string     `json:"name"        binding:"omitempty,min=1"`
	Age        *int        `json:"age"         binding:"omitempty,gte=0,lte=130"`
	Gender     *string     `json:"gender"      binding:"omitempty,oneof=Male Female Other"`
	Height     *float64    `json:"height"      binding:"omitempty,gt=0"`
	Weight     *float64    `json:"weight"      binding:"omitempty,gt=0"`
	HealthData *healthData `json:"health_data"`
}

// createMealLogItemRequest is the request body for POST /api/meal-log/items.
type createMealLogItemRequest struct {
	Date     string  `json:"date"`
	Name     string  `json:"name"      binding:"required"`
	Type     string  `json:"type"      binding:"required,oneof=breakfast lunch dinner snack"`
	Calories float64 `json:"calories"  binding:"gte=0"`
	ProteinG float64 `json:"protein_g" binding:"gte=0"`
	CarbsG   float64 `json:"carbs_g"   binding:"gte=0"`
	FatsG    float64 `json:"fats_g"    binding:"gte=0"`
}

// updateMealLogItemRequest is the request body for PUT /api/meal-log/items/:id.
// Nil fields keep their stored value.
type updateMealLogItemRequest struct {
	Date     *string  `json:"date"`
	Name     *string  `json:"name"      binding:"omitempty,min=1"`
	Type     *string  `json:"type"      binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Calories *float64 `json:"calories"  binding:"omitempty,gte=0"`
	ProteinG *float64 `json:"protein_g" binding:"omitempty,gte=0"`
	CarbsG   *float64 `json:"carbs_g"   binding:"omitempty,gte=0"`
	FatsG    *float64 `json:"fats_g"    binding:"omitempty,gte=0"`
}

// planStatusRequest is the request body for PATCH /api/diet/plans/:id/status.
type planStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Active Completed Archived"`
}

// weightEntryRequest is the request body for POST /api/weight-log.
type weightEntryRequest struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight_kg" binding:"required,gt=0,lte=700"`
}

// scoreRequest is the request body for POST /api/nutrition/score.
// Goals default to defaultGoals when omitted.
type scoreRequest struct {
	Actual nutriscore.Amounts  `json:"actual"`
	Goals  *nutriscore.Amounts `json:"goals"`
}

// goalsRequest is the request body for POST /api/nutrition/goals.
type goalsRequest struct {
	Age           float64 `json:"age"            binding:"required,gt=0,lte=130"`
	Weight        float64 `json:"weight"         binding:"required,gt=0"`
	Height        float64 `json:"height"         binding:"required,gt=0"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
}
