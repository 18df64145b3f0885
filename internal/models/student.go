package models

import "time"

// Student is one enrolled member of a class. Deactivated students stay in
// the table but are excluded from enrollment counts and reports.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	ClassID   uint      `gorm:"not null;index" json:"class_id"`
	Active    bool      `gorm:"not null;default:true;index" json:"active"`
	Address   string    `gorm:"size:255" json:"address,omitempty"`
	Phone     string    `gorm:"size:32" json:"phone,omitempty"`
	BirthDate string    `gorm:"size:10" json:"birth_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Class Class `gorm:"foreignKey:ClassID" json:"-"`
}

func (Student) TableName() string { return "students" }
