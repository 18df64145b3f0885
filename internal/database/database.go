package database

import (
	"log"

	"ebdadmin/config"
	"ebdadmin/internal/domain"
	"ebdadmin/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Class{},
		&models.Student{},
		&models.Registration{},
		&models.SystemSetting{},
	)
}

// SeedAdmin ensures the single admin account exists. The password is only
// applied on first creation; changing ADMIN_PASSWORD later does not rotate
// an existing account.
func SeedAdmin(db *gorm.DB, cfg *config.AdminConfig) {
	var count int64
	db.Model(&models.User{}).Where("username = ?", cfg.Username).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[seed] admin password hash: %v", err)
		return
	}
	u := &models.User{Username: cfg.Username, PasswordHash: string(hash), Role: domain.RoleAdmin}
	if err := db.Create(u).Error; err != nil {
		log.Printf("[seed] admin account: %v", err)
	}
}

// SeedSettings inserts default system settings when missing. The write
// gate starts open.
func SeedSettings(db *gorm.DB) {
	var count int64
	db.Model(&models.SystemSetting{}).Where("key = ?", domain.SettingAllowRegistrations).Count(&count)
	if count > 0 {
		return
	}
	s := &models.SystemSetting{Key: domain.SettingAllowRegistrations, Value: true}
	if err := db.Create(s).Error; err != nil {
		log.Printf("[seed] settings: %v", err)
	}
}
