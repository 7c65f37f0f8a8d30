package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// insecureJWTSecret is the fallback signing secret. Refused outside local dev.
const insecureJWTSecret = "change_me"

// config holds everything read from the environment at startup.
type config struct {
	Env   string // local | staging | production
	Port  int
	DBURL string

	JWTSecret string
	JWTTTL    time.Duration

	// Rate limiting: RateLimitMax requests per RateLimitWindow per client IP.
	RateLimitMax    int
	RateLimitWindow time.Duration

	CORSAllowedOrigins []string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

// loadConfig reads the process environment. Call after godotenv.Load so .env
// values are visible.
func loadConfig() *config {
	env := strings.TrimSpace(os.Getenv("ENV"))
	if env == "" {
		env = "local"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = insecureJWTSecret
	}

	openAIBaseURL := strings.TrimRight(os.Getenv("OPENAI_BASE_URL"), "/")
	if openAIBaseURL == "" {
		openAIBaseURL = "https://api.openai.com"
	}
	openAIModel := os.Getenv("OPENAI_MODEL")
	if openAIModel == "" {
		openAIModel = "gpt-4o-mini"
	}

	return &config{
		Env:                env,
		Port:               envInt("PORT", 5000),
		DBURL:              os.Getenv("DB_URL"),
		JWTSecret:          jwtSecret,
		JWTTTL:             time.Duration(envInt("JWT_TTL_HOURS", 7*24)) * time.Hour,
		RateLimitMax:       envInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow:    time.Duration(envInt("RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
		CORSAllowedOrigins: parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      openAIBaseURL,
		OpenAIModel:        openAIModel,
	}
}

// isProduction reports whether insecure defaults must be rejected.
func (c *config) isProduction() bool {
	return c.Env == "production" || c.Env == "staging"
}

// printStartupBanner logs the resolved configuration. Secrets are only ever
// reported as "set" / "not set".
func printStartupBanner(cfg *config) {
	log.Println("========== NutriAI API ==========")
	log.Printf("  env              = %s", cfg.Env)
	log.Printf("  port             = %d", cfg.Port)
	log.Printf("  db_url           = %s", setOrNot(cfg.DBURL))
	log.Printf("  jwt_secret       = %s", secretStatus(cfg.JWTSecret))
	log.Printf("  jwt_ttl          = %s", cfg.JWTTTL)
	log.Printf("  rate_limit       = %d per %s", cfg.RateLimitMax, cfg.RateLimitWindow)
	log.Printf("  cors_origins     = %s", strings.Join(cfg.CORSAllowedOrigins, ","))
	log.Printf("  openai_api_key   = %s", setOrNot(cfg.OpenAIAPIKey))
	if cfg.OpenAIAPIKey != "" {
		log.Printf("  openai_model     = %s", cfg.OpenAIModel)
	}
	log.Println("=================================")
}

// validateConfig performs fatal checks that only matter outside local dev.
func validateConfig(cfg *config) {
	if cfg.DBURL == "" {
		log.Fatal("FATAL db: DB_URL is not set")
	}
	if cfg.isProduction() && cfg.JWTSecret == insecureJWTSecret {
		log.Fatalf("FATAL auth: JWT_SECRET must not be '%s' in %s", insecureJWTSecret, cfg.Env)
	}
}

func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"*"}
		}
		return nil
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// envInt reads an int env var, falling back to defaultVal when unset or malformed.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using %d", key, s, defaultVal)
		return defaultVal
	}
	return v
}

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}

func secretStatus(v string) string {
	if v == insecureJWTSecret {
		return "set (DEFAULT, insecure)"
	}
	return "set (custom)"
}
