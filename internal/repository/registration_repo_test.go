package repository

import (
	"testing"
	"time"

	"ebdadmin/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Class{}, &models.Student{}, &models.Registration{}, &models.SystemSetting{},
	))
	for i, name := range []string{"CLASSE A", "CLASSE B", "CLASSE C", "CLASSE D", "CLASSE E"} {
		require.NoError(t, db.Create(&models.Class{ID: uint(i + 1), Name: name}).Error)
	}
	return db
}

func newReg(classID uint, at time.Time) *models.Registration {
	return &models.Registration{
		ID:               uuid.NewString(),
		ClassID:          classID,
		RegistrationDate: at,
		PresentStudents:  datatypes.JSONSlice[string]{"Ana"},
		TotalPresent:     1,
	}
}

func TestFindForClassDayExclusiveBound(t *testing.T) {
	repo := NewRegistrationRepository(testDB(t))
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	inside := newReg(1, day.Add(10*time.Hour))
	require.NoError(t, repo.Create(inside))
	// Midnight of the next day is outside the exclusive range.
	require.NoError(t, repo.Create(newReg(1, day.Add(24*time.Hour))))
	// Other classes never match.
	require.NoError(t, repo.Create(newReg(2, day.Add(10*time.Hour))))

	got, err := repo.FindForClassDay(1, day)
	require.NoError(t, err)
	assert.Equal(t, inside.ID, got.ID)

	_, err = repo.FindForClassDay(3, day)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindForClassDayPicksNewestCreated(t *testing.T) {
	db := testDB(t)
	repo := NewRegistrationRepository(db)
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	older := newReg(1, day)
	newer := newReg(1, day)
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))
	// Force distinct creation times; sqlite timestamps can collide.
	require.NoError(t, db.Model(older).Update("created_at", day.Add(1*time.Hour)).Error)
	require.NoError(t, db.Model(newer).Update("created_at", day.Add(2*time.Hour)).Error)

	got, err := repo.FindForClassDay(1, day)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
}

func TestListByDayInclusiveBound(t *testing.T) {
	repo := NewRegistrationRepository(testDB(t))
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(newReg(1, day)))
	// 23:59:59.999 is still inside the report range.
	require.NoError(t, repo.Create(newReg(2, day.Add(24*time.Hour-time.Millisecond))))
	require.NoError(t, repo.Create(newReg(3, day.Add(24*time.Hour))))

	list, err := repo.ListByDayInclusive(day)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListRecentByClassNewestFirstBounded(t *testing.T) {
	repo := NewRegistrationRepository(testDB(t))
	base := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	for week := 0; week < 25; week++ {
		require.NoError(t, repo.Create(newReg(1, base.AddDate(0, 0, 7*week))))
	}

	list, err := repo.ListRecentByClass(1, 20)
	require.NoError(t, err)
	require.Len(t, list, 20)
	assert.Equal(t, base.AddDate(0, 0, 7*24), list[0].RegistrationDate.UTC())
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i].RegistrationDate.Before(list[i-1].RegistrationDate))
	}
}

func TestRegisteredClassIDs(t *testing.T) {
	repo := NewRegistrationRepository(testDB(t))
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(newReg(1, day.Add(9*time.Hour))))
	require.NoError(t, repo.Create(newReg(2, day.Add(10*time.Hour))))
	require.NoError(t, repo.Create(newReg(5, day.AddDate(0, 0, -7))))

	ids, err := repo.RegisteredClassIDs(day)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2}, ids)
}

func TestMutationEvents(t *testing.T) {
	repo := NewRegistrationRepository(testDB(t))
	var events []Event
	unsubscribe := repo.Subscribe(func(e Event) { events = append(events, e) })

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	reg := newReg(1, day)
	require.NoError(t, repo.Create(reg))
	reg.Visitors = 2
	require.NoError(t, repo.Update(reg))
	require.NoError(t, repo.Delete(reg.ID))

	require.Len(t, events, 3)
	assert.Equal(t, EventInsert, events[0].Action)
	assert.Equal(t, EventUpdate, events[1].Action)
	assert.Equal(t, EventDelete, events[2].Action)
	for _, e := range events {
		assert.Equal(t, reg.ID, e.ID)
		assert.Equal(t, uint(1), e.ClassID)
	}

	unsubscribe()
	require.NoError(t, repo.Create(newReg(2, day)))
	assert.Len(t, events, 3)
}

func TestSettingRepositoryUpsert(t *testing.T) {
	repo := NewSettingRepository(testDB(t))

	_, err := repo.Get("allow_registrations")
	assert.Error(t, err)

	require.NoError(t, repo.Set("allow_registrations", true))
	v, err := repo.Get("allow_registrations")
	require.NoError(t, err)
	assert.True(t, v)

	require.NoError(t, repo.Set("allow_registrations", false))
	v, err = repo.Get("allow_registrations")
	require.NoError(t, err)
	assert.False(t, v)
}
