package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenIssuer is the iss claim on every token this server signs.
const tokenIssuer = "nutriai"

var errInvalidToken = errors.New("invalid token")

// dummyHash is a pre-computed bcrypt hash used when a login email isn't found.
// Running bcrypt against it (instead of returning early) keeps response time
// constant, preventing timing-based account enumeration.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

/* ─── Tokens ─────────────────────────────────────────────────────────── */

// issueToken signs an HS256 JWT whose subject is the user id.
func issueToken(secret string, ttl time.Duration, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// parseToken verifies signature, expiry and issuer and returns the user id.
func parseToken(secret, tokenString string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, errInvalidToken
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errInvalidToken
	}
	return id, nil
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// register creates a user and returns a token for it.
// POST /api/auth/register (public).
func (h *Handler) register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	var exists bool
	if err := h.db.QueryRow(c, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists); err != nil {
		log.Printf("[register] lookup failed: %v", err)
		apiError(c, http.StatusInternalServerError, "Server error")
		return
	}
	if exists {
		apiError(c, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[register] hash failed: %v", err)
		apiError(c, http.StatusInternalServerError, "Server error")
		return
	}

	hd := healthData{}
	if body.HealthData != nil {
		hd = *body.HealthData
	}
	hdJSON, err := marshalJSONB(hd.withDefaults())
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid health_data")
		return
	}

	u, err := queryOne[user](h.db, c,
		`INSERT INTO users (id, email, password_hash, name, age, gender, height_cm, weight_kg, health_data)
		 VALUES (@id, @email, @passwordHash, @name, @age, @gender, @height, @weight, @healthData::jsonb)
		 RETURNING *`,
		pgx.NamedArgs{
			"id": uuid.New(), "email": email, "passwordHash": string(hash),
			"name": strings.TrimSpace(body.Name), "age": body.Age, "gender": body.Gender,
			"height": body.Height, "weight": body.Weight, "healthData": hdJSON,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := issueToken(h.cfg.JWTSecret, h.cfg.JWTTTL, u.ID)
	if err != nil {
		log.Printf("[register] sign failed: %v", err)
		apiError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Token: token,
		User:  userSummary{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// login verifies email/password and returns a fresh token.
// POST /api/auth/login (public).
func (h *Handler) login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	u, lookupErr := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE email = @email",
		pgx.NamedArgs{"email": strings.ToLower(strings.TrimSpace(body.Email))})

	// Always run bcrypt so response time doesn't reveal whether the email exists.
	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Password))

	if lookupErr != nil || compareErr != nil {
		apiError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := issueToken(h.cfg.JWTSecret, h.cfg.JWTTTL, u.ID)
	if err != nil {
		log.Printf("[login] sign failed: %v", err)
		apiError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  userSummary{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// authMiddleware validates the Bearer JWT and sets user_id on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		userID, err := parseToken(h.cfg.JWTSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
