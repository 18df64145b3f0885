package service

import (
	"errors"
	"testing"
	"time"

	"ebdadmin/internal/domain"
	"ebdadmin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegLister struct {
	regs []models.Registration
	err  error
}

func (s stubRegLister) ListByDayInclusive(time.Time) ([]models.Registration, error) {
	return s.regs, s.err
}

type stubStudentLister struct {
	students []models.Student
	err      error
}

func (s stubStudentLister) ListActive() ([]models.Student, error) { return s.students, s.err }

type stubClassLister struct {
	classes []models.Class
	err     error
}

func (s stubClassLister) List() ([]models.Class, error) { return s.classes, s.err }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func reg(classID uint, present int, visitors int, cash, pix string) models.Registration {
	return models.Registration{
		ClassID:          classID,
		RegistrationDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		TotalPresent:     present,
		Visitors:         visitors,
		OfferingCash:     money(cash),
		OfferingPix:      money(pix),
	}
}

func TestBuildReportNoData(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	students := stubStudentLister{students: []models.Student{{ID: 1, Name: "Ana", ClassID: 1, Active: true}}}
	classes := stubClassLister{classes: []models.Class{{ID: 1, Name: "CLASSE A"}}}

	t.Run("no registrations", func(t *testing.T) {
		svc := NewReportService(stubRegLister{}, students, classes)
		_, err := svc.BuildReport(day)
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("no active students", func(t *testing.T) {
		svc := NewReportService(stubRegLister{regs: []models.Registration{reg(1, 3, 0, "10", "0")}}, stubStudentLister{}, classes)
		_, err := svc.BuildReport(day)
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("read error", func(t *testing.T) {
		svc := NewReportService(stubRegLister{err: errors.New("store down")}, students, classes)
		_, err := svc.BuildReport(day)
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestBuildReportTotalsAndDetails(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	regs := stubRegLister{regs: []models.Registration{
		{ClassID: 1, TotalPresent: 8, Visitors: 2, Bibles: 5, Magazines: 6, OfferingCash: money("10.00"), OfferingPix: money("5.50")},
		{ClassID: 2, TotalPresent: 4, Visitors: 1, Bibles: 2, Magazines: 3, OfferingCash: money("7.25"), OfferingPix: money("0")},
	}}
	students := stubStudentLister{students: []models.Student{
		{ID: 1, ClassID: 1, Active: true}, {ID: 2, ClassID: 1, Active: true},
		{ID: 3, ClassID: 1, Active: true}, {ID: 4, ClassID: 1, Active: true},
		{ID: 5, ClassID: 1, Active: true}, {ID: 6, ClassID: 1, Active: true},
		{ID: 7, ClassID: 1, Active: true}, {ID: 8, ClassID: 1, Active: true},
		{ID: 9, ClassID: 1, Active: true}, {ID: 10, ClassID: 1, Active: true},
		{ID: 11, ClassID: 2, Active: true}, {ID: 12, ClassID: 2, Active: true},
		{ID: 13, ClassID: 2, Active: true},
	}}
	classes := stubClassLister{classes: []models.Class{
		{ID: 1, Name: "CLASSE BEREIA"},
		{ID: 2, Name: "CLASSE ADULTOS"},
	}}

	svc := NewReportService(regs, students, classes)
	report, err := svc.BuildReport(day)
	require.NoError(t, err)

	assert.Equal(t, 13, report.Totals.Enrolled)
	assert.Equal(t, 12, report.Totals.Present)
	assert.Equal(t, 1, report.Totals.Absent)
	assert.Equal(t, 3, report.Totals.Visitors)
	assert.Equal(t, 7, report.Totals.Bibles)
	assert.Equal(t, 9, report.Totals.Magazines)
	assert.True(t, report.Totals.Cash.Equal(money("17.25")))
	assert.True(t, report.Totals.Pix.Equal(money("5.50")))
	assert.True(t, report.Totals.Offering.Equal(money("22.75")))
	assert.Equal(t, domain.MagazineBreakdown, report.Magazines)

	// Detail rows come back alphabetical by class name.
	require.Len(t, report.Classes, 2)
	assert.Equal(t, "CLASSE ADULTOS", report.Classes[0].ClassName)
	assert.Equal(t, "CLASSE BEREIA", report.Classes[1].ClassName)

	bereia := report.Classes[1]
	assert.Equal(t, 10, bereia.Enrolled)
	assert.Equal(t, 8, bereia.Present)
	assert.Equal(t, 2, bereia.Absent)
	assert.Equal(t, 10, bereia.TotalPresent)
	assert.True(t, bereia.Offering.Equal(money("15.50")))
}

func TestBuildReportNegativeAbsentNotClamped(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	regs := stubRegLister{regs: []models.Registration{
		{ClassID: 1, TotalPresent: 5, OfferingCash: money("0"), OfferingPix: money("0")},
	}}
	students := stubStudentLister{students: []models.Student{{ID: 1, ClassID: 1, Active: true}}}
	classes := stubClassLister{classes: []models.Class{{ID: 1, Name: "CLASSE A"}}}

	report, err := NewReportService(regs, students, classes).BuildReport(day)
	require.NoError(t, err)
	assert.Equal(t, -4, report.Totals.Absent)
	assert.Equal(t, -4, report.Classes[0].Absent)
}

func TestBuildReportUnknownClassPlaceholder(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	regs := stubRegLister{regs: []models.Registration{
		{ClassID: 99, TotalPresent: 1, OfferingCash: money("0"), OfferingPix: money("0")},
	}}
	students := stubStudentLister{students: []models.Student{{ID: 1, ClassID: 1, Active: true}}}
	classes := stubClassLister{classes: []models.Class{{ID: 1, Name: "CLASSE A"}}}

	report, err := NewReportService(regs, students, classes).BuildReport(day)
	require.NoError(t, err)
	require.Len(t, report.Classes, 1)
	assert.Equal(t, domain.UnknownClassName, report.Classes[0].ClassName)
}

func TestRankingTopThreeWithTies(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	// Offerings [10, 30, 20, 30, 5] in fetch order, all adult tier.
	regs := stubRegLister{regs: []models.Registration{
		{ClassID: 1, TotalPresent: 1, OfferingCash: money("10"), OfferingPix: money("0")},
		{ClassID: 2, TotalPresent: 1, OfferingCash: money("30"), OfferingPix: money("0")},
		{ClassID: 3, TotalPresent: 1, OfferingCash: money("20"), OfferingPix: money("0")},
		{ClassID: 4, TotalPresent: 1, OfferingCash: money("30"), OfferingPix: money("0")},
		{ClassID: 5, TotalPresent: 1, OfferingCash: money("5"), OfferingPix: money("0")},
	}}
	students := stubStudentLister{students: []models.Student{{ID: 1, ClassID: 1, Active: true}}}
	classes := stubClassLister{classes: []models.Class{
		{ID: 1, Name: "CLASSE A"}, {ID: 2, Name: "CLASSE B"}, {ID: 3, Name: "CLASSE C"},
		{ID: 4, Name: "CLASSE D"}, {ID: 5, Name: "CLASSE E"},
	}}

	report, err := NewReportService(regs, students, classes).BuildReport(day)
	require.NoError(t, err)

	top := report.TopClasses[domain.TierAdults]
	require.Len(t, top, 3)
	// The two 30s keep fetch order (B before D), then the 20.
	assert.Equal(t, "CLASSE B", top[0].ClassName)
	assert.Equal(t, "1°", top[0].Rank)
	assert.Equal(t, "CLASSE D", top[1].ClassName)
	assert.Equal(t, "2°", top[1].Rank)
	assert.Equal(t, "CLASSE C", top[2].ClassName)
	assert.Equal(t, "3°", top[2].Rank)

	// The full table carries the same labels and no label beyond rank 3.
	byName := make(map[string]ClassDetail)
	for _, d := range report.Classes {
		byName[d.ClassName] = d
	}
	assert.Equal(t, "1°", byName["CLASSE B"].Rank)
	assert.Equal(t, "2°", byName["CLASSE D"].Rank)
	assert.Equal(t, "3°", byName["CLASSE C"].Rank)
	assert.Empty(t, byName["CLASSE A"].Rank)
	assert.Empty(t, byName["CLASSE E"].Rank)
}

func TestRankingIsPerTier(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	regs := stubRegLister{regs: []models.Registration{
		{ClassID: 1, TotalPresent: 1, OfferingCash: money("5"), OfferingPix: money("0")},
		{ClassID: 2, TotalPresent: 1, OfferingCash: money("100"), OfferingPix: money("0")},
		{ClassID: 3, TotalPresent: 1, OfferingCash: money("1"), OfferingPix: money("0")},
	}}
	students := stubStudentLister{students: []models.Student{{ID: 1, ClassID: 1, Active: true}}}
	classes := stubClassLister{classes: []models.Class{
		{ID: 1, Name: "SOLDADOS DE CRISTO"},
		{ID: 2, Name: "CLASSE ADULTOS"},
		{ID: 3, Name: "ESTRELA DE BELEM"},
	}}

	report, err := NewReportService(regs, students, classes).BuildReport(day)
	require.NoError(t, err)

	require.Len(t, report.TopClasses[domain.TierChildren], 1)
	assert.Equal(t, "1°", report.TopClasses[domain.TierChildren][0].Rank)
	require.Len(t, report.TopClasses[domain.TierAdolescents], 1)
	assert.Equal(t, "1°", report.TopClasses[domain.TierAdolescents][0].Rank)
	require.Len(t, report.TopClasses[domain.TierAdults], 1)
	assert.Equal(t, "1°", report.TopClasses[domain.TierAdults][0].Rank)
}
