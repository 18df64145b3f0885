package service

import (
	"sort"
	"time"

	"ebdadmin/internal/domain"
	"ebdadmin/internal/models"

	"github.com/shopspring/decimal"
)

type reportRegistrationStore interface {
	ListByDayInclusive(day time.Time) ([]models.Registration, error)
}

type activeStudentLister interface {
	ListActive() ([]models.Student, error)
}

type classLister interface {
	List() ([]models.Class, error)
}

// ClassDetail is one class row on the daily report.
type ClassDetail struct {
	ClassName    string          `json:"class_name"`
	Tier         string          `json:"tier"`
	Enrolled     int             `json:"enrolled"`
	Present      int             `json:"present"`
	Visitors     int             `json:"visitors"`
	Absent       int             `json:"absent"`
	TotalPresent int             `json:"total_present"`
	Bibles       int             `json:"bibles"`
	Magazines    int             `json:"magazines"`
	Offering     decimal.Decimal `json:"offering"`
	Rank         string          `json:"rank,omitempty"`
}

// ReportTotals are the day-wide sums across every registration.
type ReportTotals struct {
	Enrolled  int             `json:"enrolled"`
	Present   int             `json:"present"`
	Absent    int             `json:"absent"`
	Visitors  int             `json:"visitors"`
	Bibles    int             `json:"bibles"`
	Magazines int             `json:"magazines"`
	Cash      decimal.Decimal `json:"cash"`
	Pix       decimal.Decimal `json:"pix"`
	Offering  decimal.Decimal `json:"offering"`
}

// Report is the full daily report: the single input of both print
// layouts, so its shape is a compatibility boundary.
type Report struct {
	Date       time.Time                `json:"date"`
	Totals     ReportTotals             `json:"totals"`
	Magazines  []domain.MagazineInfo    `json:"magazines"`
	TopClasses map[string][]ClassDetail `json:"top_classes"`
	Classes    []ClassDetail            `json:"classes"`
}

// ReportService aggregates one day's registrations into totals, per-class
// rows, and the per-tier offering rankings.
type ReportService struct {
	regs     reportRegistrationStore
	students activeStudentLister
	classes  classLister
}

func NewReportService(regs reportRegistrationStore, students activeStudentLister, classes classLister) *ReportService {
	return &ReportService{regs: regs, students: students, classes: classes}
}

// BuildReport assembles the report for one calendar day. A day with no
// registrations, no active students, or any failed read yields ErrNoData;
// a partial report is never returned.
func (s *ReportService) BuildReport(day time.Time) (*Report, error) {
	regs, err := s.regs.ListByDayInclusive(day)
	if err != nil || len(regs) == 0 {
		return nil, ErrNoData
	}
	students, err := s.students.ListActive()
	if err != nil || len(students) == 0 {
		return nil, ErrNoData
	}
	classes, err := s.classes.List()
	if err != nil {
		return nil, ErrNoData
	}

	classNames := make(map[uint]string, len(classes))
	for _, c := range classes {
		classNames[c.ID] = c.Name
	}
	enrolledByClass := make(map[uint]int, len(classes))
	for _, st := range students {
		enrolledByClass[st.ClassID]++
	}

	totals := ReportTotals{
		Enrolled: len(students),
		Cash:     decimal.Zero,
		Pix:      decimal.Zero,
	}
	details := make([]*ClassDetail, 0, len(regs))
	for _, reg := range regs {
		name, ok := classNames[reg.ClassID]
		if !ok {
			name = domain.UnknownClassName
		}
		cash := reg.OfferingCash
		pix := reg.OfferingPix
		enrolled := enrolledByClass[reg.ClassID]
		d := &ClassDetail{
			ClassName:    name,
			Tier:         domain.TierOf(name),
			Enrolled:     enrolled,
			Present:      reg.TotalPresent,
			Visitors:     reg.Visitors,
			Absent:       enrolled - reg.TotalPresent,
			TotalPresent: reg.TotalPresent + reg.Visitors,
			Bibles:       reg.Bibles,
			Magazines:    reg.Magazines,
			Offering:     cash.Add(pix),
		}
		details = append(details, d)

		totals.Present += reg.TotalPresent
		totals.Visitors += reg.Visitors
		totals.Bibles += reg.Bibles
		totals.Magazines += reg.Magazines
		totals.Cash = totals.Cash.Add(cash)
		totals.Pix = totals.Pix.Add(pix)
	}
	totals.Offering = totals.Cash.Add(totals.Pix)
	// Not clamped: inconsistent data shows up as a negative absent count.
	totals.Absent = totals.Enrolled - totals.Present

	top := make(map[string][]ClassDetail, 3)
	for _, tier := range []string{domain.TierChildren, domain.TierAdolescents, domain.TierAdults} {
		ranked := rankTier(details, tier)
		n := len(ranked)
		if n > 3 {
			n = 3
		}
		tierTop := make([]ClassDetail, 0, n)
		for _, d := range ranked[:n] {
			tierTop = append(tierTop, *d)
		}
		top[tier] = tierTop
	}

	table := make([]ClassDetail, len(details))
	for i, d := range details {
		table[i] = *d
	}
	sort.SliceStable(table, func(i, j int) bool { return table[i].ClassName < table[j].ClassName })

	return &Report{
		Date:       day,
		Totals:     totals,
		Magazines:  domain.MagazineBreakdown,
		TopClasses: top,
		Classes:    table,
	}, nil
}

// rankTier orders one tier's rows by offering descending (stable, so ties
// keep fetch order) and stamps "1°".."3°" on the top three. Labels are
// written through the shared pointers, so the full table and the top-3
// summary always agree.
func rankTier(details []*ClassDetail, tier string) []*ClassDetail {
	rows := make([]*ClassDetail, 0, len(details))
	for _, d := range details {
		if d.Tier == tier {
			rows = append(rows, d)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Offering.GreaterThan(rows[j].Offering)
	})
	labels := []string{"1°", "2°", "3°"}
	for i, d := range rows {
		if i >= len(labels) {
			break
		}
		d.Rank = labels[i]
	}
	return rows
}
