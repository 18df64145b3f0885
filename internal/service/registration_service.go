package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"ebdadmin/internal/models"
	"ebdadmin/pkg/dateutil"
	"ebdadmin/pkg/sanitize"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type registrationStore interface {
	Create(reg *models.Registration) error
	Update(reg *models.Registration) error
	GetByID(id string) (*models.Registration, error)
	FindForClassDay(classID uint, day time.Time) (*models.Registration, error)
}

type receiptUploader interface {
	Upload(ctx context.Context, file io.Reader, name string) (string, error)
}

type locker interface {
	IsLocked() bool
}

// ReceiptFile is one attached proof-of-payment file.
type ReceiptFile struct {
	Name   string
	Reader io.Reader
}

// SubmitInput is the assembled form state for one class/day submission.
type SubmitInput struct {
	ClassID         uint
	Day             time.Time
	PresentStudents []string
	Visitors        int
	Bibles          int
	Magazines       int
	OfferingCash    decimal.Decimal
	OfferingPix     decimal.Decimal
	Hymn            string
	// KeptReceiptPaths are already-stored receipts the edit keeps.
	KeptReceiptPaths []string
	Receipts         []ReceiptFile
	// EditID targets an existing registration; empty inserts a new one.
	EditID string
}

// RegistrationService decides, per class and calendar day, whether a
// submission creates a new registration or edits the existing one.
type RegistrationService struct {
	regs     registrationStore
	lock     locker
	receipts receiptUploader
	now      func() time.Time
}

func NewRegistrationService(regs registrationStore, lock locker, receipts receiptUploader) *RegistrationService {
	return &RegistrationService{regs: regs, lock: lock, receipts: receipts, now: time.Now}
}

// LoadOrInit returns the registration already recorded for the class on
// the given day, or nil when the form should start blank. Lookup errors
// also yield a blank form; the submit path re-resolves the edit target
// anyway.
func (s *RegistrationService) LoadOrInit(classID uint, day time.Time) *models.Registration {
	reg, err := s.regs.FindForClassDay(classID, day)
	if err != nil {
		return nil
	}
	return reg
}

// Submit validates, uploads receipts, and writes the registration. When
// input.EditID is set the existing row is updated in place; otherwise a
// new row is inserted. TotalPresent is always derived from the present
// list, never trusted from the caller.
func (s *RegistrationService) Submit(ctx context.Context, input SubmitInput) (*models.Registration, error) {
	if s.lock.IsLocked() {
		return nil, ErrSystemLocked
	}
	if input.ClassID == 0 {
		return nil, ErrClassRequired
	}

	// Receipts go up sequentially, before any row is written: if one
	// fails, the whole submission aborts with nothing persisted.
	paths := append([]string(nil), input.KeptReceiptPaths...)
	for _, f := range input.Receipts {
		name := fmt.Sprintf("%d_%s", s.now().UnixMilli(), sanitize.FileName(f.Name))
		path, err := s.receipts.Upload(ctx, f.Reader, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUploadFailed, f.Name, err)
		}
		paths = append(paths, path)
	}

	var reg *models.Registration
	if input.EditID != "" {
		existing, err := s.regs.GetByID(input.EditID)
		if err != nil {
			return nil, err
		}
		reg = existing
	} else {
		reg = &models.Registration{ID: uuid.NewString()}
	}

	reg.ClassID = input.ClassID
	reg.RegistrationDate = dateutil.Day(input.Day)
	reg.PresentStudents = datatypes.JSONSlice[string](input.PresentStudents)
	reg.TotalPresent = len(input.PresentStudents)
	reg.Visitors = input.Visitors
	reg.Bibles = input.Bibles
	reg.Magazines = input.Magazines
	reg.OfferingCash = input.OfferingCash
	reg.OfferingPix = input.OfferingPix
	reg.Hymn = input.Hymn
	reg.PixReceiptPaths = datatypes.JSONSlice[string](paths)

	var err error
	if input.EditID != "" {
		err = s.regs.Update(reg)
	} else {
		err = s.regs.Create(reg)
	}
	if err != nil {
		return nil, err
	}

	// Reload the class/day to confirm what actually persisted and to
	// resynchronize the edit target for the next submission.
	if saved := s.LoadOrInit(input.ClassID, input.Day); saved != nil {
		return saved, nil
	}
	log.Printf("[registration] reload after save found nothing for class %d", input.ClassID)
	return reg, nil
}
