// CLI tool to create a user with a bcrypt-hashed password and print a bearer
// token for it, signed with JWT_SECRET.
// Usage: go run ./cmd/create-user [--ttl 168h]
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	ttl := flag.Duration("ttl", 7*24*time.Hour, "lifetime of the printed token")
	flag.Parse()

	// .env is optional; DB_URL and JWT_SECRET may come from the environment directly.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change_me"
	}

	conn, err := pgx.Connect(context.Background(), os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	reader := bufio.NewReader(os.Stdin)
	name := prompt(reader, "Name: ")
	email := strings.ToLower(prompt(reader, "Email: "))
	password := prompt(reader, "Password: ")

	if name == "" || email == "" || len(password) < 6 {
		fmt.Fprintln(os.Stderr, "Name and email are required; password needs at least 6 characters")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	userID := uuid.New()
	_, err = conn.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, name, health_data)
		 VALUES ($1, $2, $3, $4, $5::jsonb)`,
		userID.String(), email, string(hash), name,
		`{"dietary_preferences":[],"allergies":[],"activity_level":"Moderate","medical_conditions":[],"goals":[],"sleep_pattern":"","water_intake_goal":2.5}`,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	token, err := signToken(secret, *ttl, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:    %s\n", userID)
	fmt.Printf("  Name:  %s\n", name)
	fmt.Printf("  Email: %s\n", email)
	fmt.Printf("  Token: %s\n", token)
}

func prompt(r *bufio.Reader, label string) string {
	fmt.Print(label)
	s, _ := r.ReadString('\n')
	return strings.TrimSpace(s)
}

// signToken mirrors the API server's token format (HS256, issuer "nutriai").
func signToken(secret string, ttl time.Duration, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    "nutriai",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
