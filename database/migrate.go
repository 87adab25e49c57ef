package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/adsboard-api/models"
	"gorm.io/gorm"
)

// copyBatchSize bounds the number of rows inserted per statement
const copyBatchSize = 500

// DBConnection represents a named database connection
type DBConnection struct {
	DB    *gorm.DB
	Name  string
	DbURL string
}

// NewDBConnection creates a new database connection
func NewDBConnection(name, dbURL string) (*DBConnection, error) {
	if dbURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	db, err := Connect(dbURL, "warn")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
	}

	return &DBConnection{
		DB:    db,
		Name:  name,
		DbURL: dbURL,
	}, nil
}

// Migrate migrates the database schema
func (c *DBConnection) Migrate() error {
	log.Printf("Migrating %s database schema...", c.Name)
	if err := Migrate(c.DB); err != nil {
		return fmt.Errorf("failed to migrate %s database: %w", c.Name, err)
	}
	log.Printf("✅ %s database schema migrated", c.Name)
	return nil
}

// MigrateDataBetweenDatabases copies users, ads and reviews from source to
// target in foreign key order. The copy runs in a single target transaction,
// so a failure leaves the target untouched.
func MigrateDataBetweenDatabases(source, target *DBConnection) error {
	log.Println("Starting data migration from source to target...")

	return target.DB.Transaction(func(tx *gorm.DB) error {
		// Step 1: Users
		var users []models.User
		if err := source.DB.Order("id").Find(&users).Error; err != nil {
			return fmt.Errorf("failed to fetch users: %w", err)
		}
		log.Printf("Found %d users to migrate", len(users))
		if len(users) > 0 {
			if err := tx.CreateInBatches(&users, copyBatchSize).Error; err != nil {
				return fmt.Errorf("failed to migrate users: %w", err)
			}
		}
		if err := resetSequence(tx, "users"); err != nil {
			return err
		}

		// Step 2: Ads
		var ads []models.Ad
		if err := source.DB.Order("id").Find(&ads).Error; err != nil {
			return fmt.Errorf("failed to fetch ads: %w", err)
		}
		log.Printf("Found %d ads to migrate", len(ads))
		if len(ads) > 0 {
			if err := tx.Omit("Author").CreateInBatches(&ads, copyBatchSize).Error; err != nil {
				return fmt.Errorf("failed to migrate ads: %w", err)
			}
		}
		if err := resetSequence(tx, "ads"); err != nil {
			return err
		}

		// Step 3: Reviews
		var reviews []models.Review
		if err := source.DB.Order("id").Find(&reviews).Error; err != nil {
			return fmt.Errorf("failed to fetch reviews: %w", err)
		}
		log.Printf("Found %d reviews to migrate", len(reviews))
		if len(reviews) > 0 {
			if err := tx.Omit("Author", "Ad").CreateInBatches(&reviews, copyBatchSize).Error; err != nil {
				return fmt.Errorf("failed to migrate reviews: %w", err)
			}
		}
		if err := resetSequence(tx, "reviews"); err != nil {
			return err
		}

		log.Println("✅ Data migration completed successfully!")
		return nil
	})
}

// sequenceResetSQL moves a serial id sequence past the highest copied id.
// With is_called = false on an empty table the next id stays 1.
func sequenceResetSQL(table string) string {
	return fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %[1]s",
		table,
	)
}

// resetSequence advances the id sequence of table after rows were inserted
// with explicit ids. Only Postgres keeps a separate sequence; SQLite derives
// the next id from the table itself.
func resetSequence(tx *gorm.DB, table string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec(sequenceResetSQL(table)).Error; err != nil {
		return fmt.Errorf("failed to reset %s id sequence: %w", table, err)
	}
	return nil
}
