package repository

import (
	"ebdadmin/internal/models"

	"gorm.io/gorm"
)

type ClassRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) Create(c *models.Class) error {
	return r.db.Create(c).Error
}

func (r *ClassRepository) GetByID(id uint) (*models.Class, error) {
	var c models.Class
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepository) List() ([]models.Class, error) {
	var list []models.Class
	err := r.db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *ClassRepository) Update(c *models.Class) error {
	return r.db.Save(c).Error
}
