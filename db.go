package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hireline/models"
)

// openDB connects to Postgres and, unless disabled via DB_AUTO_MIGRATE,
// brings the schema up to date.
func openDB(cfg *Config) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("HIRELINE_DB_DSN is not set; a Postgres DSN is required")
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.AutoMigrate {
		if err := migrateDB(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func migrateDB(db *gorm.DB) error {
	// migrate models individually so a failure on one doesn't mask the other
	if err := db.AutoMigrate(&models.Application{}); err != nil {
		return fmt.Errorf("migrate applications: %w", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}); err != nil {
		return fmt.Errorf("migrate admin_users: %w", err)
	}
	return nil
}

// seedAdmin creates the configured dashboard account if it doesn't exist yet.
// Without ADMIN_EMAIL/ADMIN_PASSWORD the dashboard stays unreachable until an
// account is created with the createadmin command.
func seedAdmin(db *gorm.DB, cfg *Config, log zerolog.Logger) error {
	email := strings.TrimSpace(strings.ToLower(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD not set; skipping admin account seeding")
		return nil
	}
	var count int64
	if err := db.Model(&models.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.AdminUser{Email: email, HashedPassword: hashed}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("seeded admin account")
	return nil
}
