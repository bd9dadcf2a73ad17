package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"Delver/internal/api/middleware"
)

// genjwt mints an HS256 access token for local development
//
// Usage:
//
//	go run ./cmd/genjwt -user alice
//	go run ./cmd/genjwt -user admin_user -role admin -ttl 24h
//
// The signing secret is read from JWT_SECRET (a .env file is loaded if present)
func main() {
	username := flag.String("user", "", "username claim")
	role := flag.String("role", "user", "role claim (user or admin)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	if *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load %s: %v", *envFile, err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	token, err := middleware.IssueToken(secret, *username, *role, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
}
