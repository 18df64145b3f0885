package service

import (
	"testing"
	"time"

	"ebdadmin/config"
	"ebdadmin/internal/auth"
	"ebdadmin/internal/database"
	"ebdadmin/internal/models"
	"ebdadmin/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access",
			RefreshSecret: "test-refresh",
			AccessExpiry:  time.Hour,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "ebdadmin-test",
		},
		Admin: config.AdminConfig{Username: "secretaria", Password: "senha-secreta"},
	}
}

func TestLoginSeededAdmin(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	cfg := authTestConfig()
	database.SeedAdmin(db, &cfg.Admin)
	svc := NewAuthService(cfg, repository.NewUserRepository(db))

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login("secretaria", "errada")
		assert.ErrorIs(t, err, ErrInvalidCreds)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, _, err := svc.Login("outra", "senha-secreta")
		assert.ErrorIs(t, err, ErrInvalidCreds)
	})

	t.Run("valid credentials", func(t *testing.T) {
		u, access, refresh, err := svc.Login("secretaria", "senha-secreta")
		require.NoError(t, err)
		assert.Equal(t, "secretaria", u.Username)

		claims, err := auth.ParseAccessToken(&cfg.JWT, access)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)

		newAccess, newRefresh, err := svc.Refresh(refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("seeding twice keeps one account", func(t *testing.T) {
		database.SeedAdmin(db, &cfg.Admin)
		var count int64
		db.Model(&models.User{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})
}
