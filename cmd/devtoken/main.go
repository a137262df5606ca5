package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"Sightings/internal/config"
)

// devtoken mints an HS256 bearer token signed with AUTH_HMAC_SECRET for local testing
//
// Usage:
//
//	go run ./cmd/devtoken -user alice -ttl 24h
//
// Use the output as: Authorization: Bearer <token>
func main() {
	user := flag.String("user", "", "username placed in the sub claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *user == "" {
		log.Fatal("-user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AuthHMACSecret == "" {
		log.Fatal("AUTH_HMAC_SECRET is not set")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   *user,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
	}
	if cfg.AuthIssuer != "" {
		claims.Issuer = cfg.AuthIssuer
	}
	if cfg.AuthAudience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.AuthAudience}
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.AuthHMACSecret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
