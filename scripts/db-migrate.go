package main

import (
	"log"
	"os"

	"github.com/adsboard-api/config"
	"github.com/adsboard-api/database"
)

func main() {
	config.LoadEnv()
	log.Println("Starting database migration...")

	sourceDBURL := os.Getenv("SOURCE_DATABASE_URL")
	if sourceDBURL == "" {
		log.Fatal("SOURCE_DATABASE_URL is required")
	}

	targetDBURL := os.Getenv("TARGET_DATABASE_URL")
	if targetDBURL == "" {
		log.Fatal("TARGET_DATABASE_URL is required")
	}

	// Connect to source database
	sourceDB, err := database.NewDBConnection("source", sourceDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to source database: %v", err)
	}

	// Connect to target database
	targetDB, err := database.NewDBConnection("target", targetDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to target database: %v", err)
	}

	// Ensure target database schema is migrated
	if err := targetDB.Migrate(); err != nil {
		log.Fatalf("Failed to migrate target database schema: %v", err)
	}

	// Copy users, ads and reviews from source to target
	if err := database.MigrateDataBetweenDatabases(sourceDB, targetDB); err != nil {
		log.Fatalf("Data migration failed: %v", err)
	}

	log.Println("Database migration completed successfully!")
}
