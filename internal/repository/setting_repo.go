package repository

import (
	"ebdadmin/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(key string) (bool, error) {
	var s models.SystemSetting
	if err := r.db.Where("key = ?", key).First(&s).Error; err != nil {
		return false, err
	}
	return s.Value, nil
}

func (r *SettingRepository) Set(key string, value bool) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.SystemSetting{Key: key, Value: value}).Error
}
