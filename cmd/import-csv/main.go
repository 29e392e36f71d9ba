package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/config"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
)

func main() {
	var (
		dbURLFlag string
		driver    string
		kind      string
		file      string
		verbose   bool
	)
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.StringVar(&driver, "driver", "postgres", "database driver: postgres or pgx")
	flag.StringVar(&kind, "kind", "", "what the file holds: olt or master")
	flag.StringVar(&file, "file", "", "CSV file to import, - for stdin")
	flag.BoolVar(&verbose, "v", false, "print every skipped row")
	flag.Parse()

	if kind != "olt" && kind != "master" {
		log.Fatal("-kind must be 'olt' or 'master'")
	}
	if file == "" {
		log.Fatal("-file is required")
	}

	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		Driver:             driver,
		URL:                dbURL,
		MaxConnections:     5,
		MaxIdleConnections: 2,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	var in io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			log.Fatalf("failed to open %s: %v", file, err)
		}
		defer f.Close()
		in = f
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	importer := services.NewImportService(database.NewOltRepository(db), database.NewEmployeeRepository(db), logger)

	// the CLI runs with operator rights
	sess := authz.Session{Role: models.RoleAdmin, PersNo: "CLI"}

	var result *models.ImportResult
	switch kind {
	case "olt":
		result, err = importer.ImportOlt(sess, in)
	case "master":
		result, err = importer.ImportEmployeeMaster(sess, in)
	}
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Rows: %d, imported: %d, skipped: %d\n", result.Total, result.Imported, result.Skipped)
	if verbose {
		for _, row := range result.SkippedRows {
			fmt.Printf("  line %d: %s\n", row.Line, row.Reason)
		}
	}
}
