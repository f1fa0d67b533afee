package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Barber{},
		&models.Shift{},
		&models.Appointment{},
		&models.Credential{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// EnsureOwner creates the owner login on first start. An existing
// credential is left untouched, so restarts never reset a changed password.
func EnsureOwner(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	if cfg.OwnerPassword == "" {
		log.Warn("OWNER_PASSWORD not set, skipping owner bootstrap")
		return nil
	}

	var existing models.Credential
	err := db.WithContext(ctx).
		Where("username = ?", cfg.OwnerUsername).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup owner: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash owner password: %w", err)
	}

	owner := models.Credential{
		Username:     cfg.OwnerUsername,
		PasswordHash: string(hash),
		Role:         string(access.RoleOwner),
	}
	if err := db.WithContext(ctx).Create(&owner).Error; err != nil {
		return fmt.Errorf("create owner: %w", err)
	}

	log.Info("owner account created", zap.String("username", owner.Username))
	return nil
}
