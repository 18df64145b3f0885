package repository

import (
	"ebdadmin/internal/models"

	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(s *models.Student) error {
	return r.db.Create(s).Error
}

func (r *StudentRepository) GetByID(id uint) (*models.Student, error) {
	var s models.Student
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns students ordered by name. classID 0 means all classes;
// activeOnly filters out deactivated students.
func (r *StudentRepository) List(classID uint, activeOnly bool) ([]models.Student, error) {
	q := r.db.Order("name ASC")
	if classID != 0 {
		q = q.Where("class_id = ?", classID)
	}
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var list []models.Student
	err := q.Find(&list).Error
	return list, err
}

// ListActive returns every active student, the population used for
// enrollment counts.
func (r *StudentRepository) ListActive() ([]models.Student, error) {
	return r.List(0, true)
}

func (r *StudentRepository) Update(s *models.Student) error {
	return r.db.Save(s).Error
}

// SetActive flips the enrollment flag without touching other fields.
func (r *StudentRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Student{}).Where("id = ?", id).Update("active", active).Error
}

func (r *StudentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Student{}, id).Error
}
