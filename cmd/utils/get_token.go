package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"rental-service/internal/domain/entity"
	"rental-service/internal/infrastructure/auth"
	"rental-service/internal/infrastructure/config"
)

// Mints a session token for local testing against the API:
//
//	go run ./cmd/utils -user 65f0c2... -role admin
//	curl --cookie "authToken=<token>" localhost:8080/user/profile
func main() {
	userID := flag.String("user", "", "user id (Mongo ObjectID hex)")
	role := flag.String("role", entity.RoleUser, "role claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	token, err := auth.NewSessionManager(cfg.SessionSecret, *ttl).Issue(*userID, *role)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Printf("\n%s=%s\n\n", cfg.SessionCookie, token)
}
