package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sibe/identity/domain"
	"github.com/sibe/identity/internal/infrastructure/repositories"
)

// Open creates a database connection. TranslateError is enabled so the
// repositories can match duplicate-key violations portably.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates or updates the credential-store tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBRole{},
		&repositories.DBAccount{},
		&repositories.DBProfile{},
		&repositories.DBLoginAttempt{},
	); err != nil {
		return fmt.Errorf("failed to migrate credential store: %w", err)
	}
	return nil
}

// SeedRoles ensures the three platform roles exist. Existing rows are left
// untouched.
func SeedRoles(db *gorm.DB) error {
	seed := []repositories.DBRole{
		{Name: string(domain.RoleClient), Description: "Standard client account"},
		{Name: string(domain.RoleOrganizer), Description: "Event organizer"},
		{Name: string(domain.RoleAdministrator), Description: "Platform administrator"},
	}
	for _, role := range seed {
		if err := db.Where("name = ?", role.Name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}
	return nil
}
