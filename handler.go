package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds shared dependencies (db pool, config, plan analyzer) for all route handlers.
type Handler struct {
	db       *pgxpool.Pool
	cfg      *config
	analyzer planAnalyzer
}

// newHandler wires the analyzer from config: OpenAI when a key is set, the
// canned mock otherwise.
func newHandler(db *pgxpool.Pool, cfg *config) *Handler {
	var analyzer planAnalyzer = mockAnalyzer{}
	if cfg.OpenAIAPIKey != "" {
		analyzer = &openAIAnalyzer{
			apiKey:   cfg.OpenAIAPIKey,
			baseURL:  cfg.OpenAIBaseURL,
			model:    cfg.OpenAIModel,
			fallback: mockAnalyzer{},
		}
	}
	return &Handler{db: db, cfg: cfg, analyzer: analyzer}
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// marshalJSONB encodes v for a `@arg::jsonb` parameter. The simple query
// protocol sends arguments as text, so structs must be encoded up front.
func marshalJSONB(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

/* ─── Response helpers ───────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// fieldError is one entry of the "fields" list in a validation failure.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// bindError reports a failed ShouldBindJSON. Validator failures list each
// offending field; anything else (malformed JSON, wrong types) is a plain 400.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	fields := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "fields": fields})
}

// Report validation failures under their JSON names ("protein_g", not "ProteinG").
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}

// dateRangeParams reads the required start/end YYYY-MM-DD query params.
// On failure it writes a 400 and returns ok=false.
func dateRangeParams(c *gin.Context) (start, end string, ok bool) {
	start, end = c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return "", "", false
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return "", "", false
	}
	return start, end, true
}

// currentUserID returns the id set by authMiddleware.
func currentUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get("user_id")
	uid, _ := id.(uuid.UUID)
	return uid
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn) because
// hosted Postgres closes idle connections after a few minutes.
func getDBPool(dbURL string) *pgxpool.Pool {
	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from server-side prepared statement caches after schema changes.
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	log.Println("DB pool ready!")
	return pool
}

// newRouter builds the engine with the global middleware chain and all routes.
func (h *Handler) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.SetTrustedProxies(nil)
	router.Use(
		metricsMiddleware(),
		securityHeaders(),
		cors(h.cfg.CORSAllowedOrigins),
		rateLimit(h.cfg.RateLimitMax, h.cfg.RateLimitWindow),
		bodyLimit(maxBodyBytes),
	)
	h.registerRoutes(router)
	return router
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.GET("/api/health", healthCheck)
	router.GET("/metrics", metricsHandler())
	router.POST("/api/auth/register", h.register)
	router.POST("/api/auth/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/auth/profile", h.getProfile)
	api.PATCH("/auth/profile", h.patchProfile)
	api.GET("/auth/goals", h.getProfileGoals)

	api.POST("/diet/generate", h.generateDietPlan)
	api.GET("/diet/my-plans", h.getMyPlans)
	api.GET("/diet/plans/:id", h.getPlanWithScores)
	api.PATCH("/diet/plans/:id/status", h.updatePlanStatus)
	api.GET("/diet/plans/:id/weekly-average", h.getPlanWeeklyAverage)
	api.GET("/diet/plans/:id/export", h.exportPlan)
	api.GET("/diet/plans/:id/days/:day/feedback", h.getDayFeedback)
	api.GET("/diet/plans/:id/days/:day/balance", h.getDayBalance)

	api.GET("/meal-log/daily", h.getDailySummary)
	api.GET("/meal-log/week-summary", h.getWeekSummary)
	api.GET("/meal-log/progress", h.getProgress)
	api.GET("/meal-log/earliest-date", h.getEarliestLogDate)
	api.POST("/meal-log/items", h.createMealLogItem)
	api.PUT("/meal-log/items/:id", h.updateMealLogItem)
	api.DELETE("/meal-log/items/:id", h.deleteMealLogItem)

	api.GET("/weight-log", h.getWeightLog)
	api.POST("/weight-log", h.upsertWeightEntry)
	api.DELETE("/weight-log/:id", h.deleteWeightEntry)

	api.POST("/nutrition/score", h.scoreDay)
	api.POST("/nutrition/goals", h.recommendGoals)
}

// healthCheck reports liveness.
// GET /api/health (public).
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "NutriAI Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
