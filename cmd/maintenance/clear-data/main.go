package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/circleops/salesops-backend/internal/config"
	"github.com/circleops/salesops-backend/internal/database"
)

// sessionTables hold login and inbox state that can be dropped without
// touching events, sales or the ledger
var sessionTables = []string{
	"otp_verifications",
	"refresh_tokens",
	"push_tokens",
	"notifications",
}

func main() {
	var (
		dbURLFlag string
		confirm   bool
	)
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.BoolVar(&confirm, "yes", false, "actually truncate; without it the tool only prints row counts")
	flag.Parse()

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     5,
		MaxIdleConnections: 2,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if confirm {
		fmt.Println("Connected to database. Truncating session tables...")
		if _, err := db.Exec(`TRUNCATE TABLE otp_verifications, refresh_tokens, push_tokens, notifications RESTART IDENTITY`); err != nil {
			log.Fatalf("failed to truncate tables: %v", err)
		}
		fmt.Println("Session data cleared (all employees must log in again).")
	}

	fmt.Println("Row counts:")
	for _, t := range sessionTables {
		var count int
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", t)).Scan(&count); err != nil {
			fmt.Printf("  %s: error: %v\n", t, err)
			continue
		}
		fmt.Printf("  %s: %d\n", t, count)
	}
}
