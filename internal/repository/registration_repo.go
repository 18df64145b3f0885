package repository

import (
	"sync"
	"time"

	"ebdadmin/internal/models"
	"ebdadmin/pkg/dateutil"

	"gorm.io/gorm"
)

const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// Event describes one mutation of the registrations table, delivered to
// subscribers after the write committed.
type Event struct {
	Action  string    `json:"action"`
	ID      string    `json:"id"`
	ClassID uint      `json:"class_id"`
	Date    time.Time `json:"date"`
}

// RegistrationRepository persists registrations and fans mutation events
// out to subscribers (the live list feed).
type RegistrationRepository struct {
	db *gorm.DB

	mu   sync.Mutex
	subs map[int]func(Event)
	next int
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db, subs: make(map[int]func(Event))}
}

// Subscribe registers fn for mutation events and returns an unsubscribe
// func. fn runs on the mutating goroutine and must not block.
func (r *RegistrationRepository) Subscribe(fn func(Event)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.next
	r.next++
	r.subs[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}
}

func (r *RegistrationRepository) notify(e Event) {
	r.mu.Lock()
	fns := make([]func(Event), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.Unlock()
	for _, fn := range fns {
		fn(e)
	}
}

func (r *RegistrationRepository) Create(reg *models.Registration) error {
	if err := r.db.Create(reg).Error; err != nil {
		return err
	}
	r.notify(Event{Action: EventInsert, ID: reg.ID, ClassID: reg.ClassID, Date: reg.RegistrationDate})
	return nil
}

func (r *RegistrationRepository) Update(reg *models.Registration) error {
	if err := r.db.Save(reg).Error; err != nil {
		return err
	}
	r.notify(Event{Action: EventUpdate, ID: reg.ID, ClassID: reg.ClassID, Date: reg.RegistrationDate})
	return nil
}

func (r *RegistrationRepository) Delete(id string) error {
	reg, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if err := r.db.Delete(&models.Registration{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.notify(Event{Action: EventDelete, ID: reg.ID, ClassID: reg.ClassID, Date: reg.RegistrationDate})
	return nil
}

func (r *RegistrationRepository) GetByID(id string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.First(&reg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// FindForClassDay returns the newest registration for the class on the
// given UTC day, using the exclusive upper bound the upsert flow relies
// on. gorm.ErrRecordNotFound when the class has not registered that day.
func (r *RegistrationRepository) FindForClassDay(classID uint, day time.Time) (*models.Registration, error) {
	start, end := dateutil.DayRangeExclusive(day)
	var reg models.Registration
	err := r.db.
		Where("class_id = ? AND registration_date >= ? AND registration_date < ?", classID, start, end).
		Order("created_at DESC").
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListByDayInclusive returns every registration on the given UTC day with
// the inclusive upper bound the daily report uses.
func (r *RegistrationRepository) ListByDayInclusive(day time.Time) ([]models.Registration, error) {
	start, end := dateutil.DayRangeInclusive(day)
	var list []models.Registration
	err := r.db.
		Where("registration_date >= ? AND registration_date <= ?", start, end).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

// ListRecentByClass returns the newest registrations for one class,
// newest first, bounded by limit.
func (r *RegistrationRepository) ListRecentByClass(classID uint, limit int) ([]models.Registration, error) {
	var list []models.Registration
	err := r.db.
		Where("class_id = ?", classID).
		Order("registration_date DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// List returns registrations newest first, optionally filtered by class.
func (r *RegistrationRepository) List(classID uint, limit int) ([]models.Registration, error) {
	q := r.db.Order("registration_date DESC")
	if classID != 0 {
		q = q.Where("class_id = ?", classID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.Registration
	err := q.Find(&list).Error
	return list, err
}

// RegisteredClassIDs returns the IDs of classes that already have a
// registration on the given day.
func (r *RegistrationRepository) RegisteredClassIDs(day time.Time) ([]uint, error) {
	start, end := dateutil.DayRangeExclusive(day)
	var ids []uint
	err := r.db.Model(&models.Registration{}).
		Where("registration_date >= ? AND registration_date < ?", start, end).
		Distinct().
		Pluck("class_id", &ids).Error
	return ids, err
}
