package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Registration is one class's attendance and offering submission for one
// calendar day. At most one row should exist per (class, day); the upsert
// flow enforces that by query pattern, not by constraint.
//
// PresentStudents stores attendee names as submitted at the time; it owns
// that snapshot and is never rewritten when a student is later renamed.
type Registration struct {
	ID               string                       `gorm:"primaryKey;size:36" json:"id"`
	ClassID          uint                         `gorm:"not null;index" json:"class_id"`
	RegistrationDate time.Time                    `gorm:"not null;index" json:"registration_date"`
	PresentStudents  datatypes.JSONSlice[string]  `json:"present_students"`
	TotalPresent     int                          `gorm:"not null" json:"total_present"`
	Visitors         int                          `gorm:"not null;default:0" json:"visitors"`
	Bibles           int                          `gorm:"not null;default:0" json:"bibles"`
	Magazines        int                          `gorm:"not null;default:0" json:"magazines"`
	OfferingCash     decimal.Decimal              `gorm:"type:decimal(10,2);not null;default:0" json:"offering_cash"`
	OfferingPix      decimal.Decimal              `gorm:"type:decimal(10,2);not null;default:0" json:"offering_pix"`
	Hymn             string                       `gorm:"size:120" json:"hymn,omitempty"`
	PixReceiptPaths  datatypes.JSONSlice[string]  `json:"pix_receipt_paths"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`

	Class Class `gorm:"foreignKey:ClassID" json:"-"`
}

func (Registration) TableName() string { return "registrations" }
