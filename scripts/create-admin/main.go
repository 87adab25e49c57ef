// Command create-admin creates an admin account, or promotes an existing
// account to admin.
//
//	go run ./scripts/create-admin -email admin@example.com
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/adsboard-api/config"
	"github.com/adsboard-api/database"
	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/models"
	"github.com/adsboard-api/repositories"
	"github.com/adsboard-api/services"
	"github.com/adsboard-api/utils"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "password for a new account; generated when empty")
	firstName := flag.String("first-name", "Admin", "first name for a new account")
	lastName := flag.String("last-name", "Admin", "last name for a new account")
	phone := flag.String("phone", "+7(000)000-00-00", "phone for a new account")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	existing, err := users.FindByEmail(ctx, *email)
	switch {
	case err == nil:
		if err := users.UpdateRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			log.Fatalf("❌ Failed to promote %s: %v", *email, err)
		}
		log.Printf("✅ User %s (id %d) is now an admin", existing.Email, existing.ID)
		return
	case !errors.Is(err, domain.ErrNotFound):
		log.Fatalf("❌ Failed to look up %s: %v", *email, err)
	}

	generated := *password == ""
	if generated {
		*password = utils.GenerateSecurePassword(16)
	}

	hashed, err := services.HashPassword(*password)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	admin := models.User{
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
		Phone:     *phone,
		Role:      models.RoleAdmin,
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatalf("❌ Failed to create admin: %v", err)
	}

	log.Printf("✅ Admin %s created with id %d", admin.Email, admin.ID)
	if generated {
		log.Printf("🔑 Generated password: %s", *password)
	}
}
