// Command seeduser creates a user account that can sign in to the API.
//
// Usage:
//
//	seeduser -email admin@example.com -password changeme [-name "Admin User"]
//
// The database path and bcrypt cost are read from the same environment as the
// server. An existing account with the email is left untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
	"github.com/artilectsolutions/budgetsplit-backend/internal/database"
	"github.com/artilectsolutions/budgetsplit-backend/internal/repository"
	"github.com/artilectsolutions/budgetsplit-backend/internal/service"
	"github.com/artilectsolutions/budgetsplit-backend/internal/validation"
)

func main() {
	_ = godotenv.Load()

	email := flag.String("email", "", "email address of the account")
	password := flag.String("password", "", "password of the account")
	name := flag.String("name", "Admin User", "display name")
	dbPath := flag.String("db", envOr("DB_PATH", "./data/budgetsplit.db"), "path to the SQLite database")
	flag.Parse()

	if err := validation.ValidateSignIn(request.SignInRequest{Email: *email, Password: *password}); err != nil {
		fmt.Fprintf(os.Stderr, "invalid credentials: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	db, err := database.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	cost, _ := strconv.Atoi(os.Getenv("BCRYPT_COST"))
	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRevokedTokenRepository(db),
		service.AuthOptions{BcryptCost: cost},
	)

	user, created, err := authService.EnsureUser(context.Background(), *email, *password, *name)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	if created {
		fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
	} else {
		fmt.Printf("User %s already exists (%s)\n", user.Email, user.ID)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
