package service

import (
	"math"
	"time"

	"ebdadmin/internal/domain"
	"ebdadmin/internal/models"
)

type studentGetter interface {
	GetByID(id uint) (*models.Student, error)
}

type classGetter interface {
	GetByID(id uint) (*models.Class, error)
}

type classHistoryStore interface {
	ListRecentByClass(classID uint, limit int) ([]models.Registration, error)
}

// HistoryRecord is one past registration seen from a student's side.
type HistoryRecord struct {
	Date      time.Time `json:"date"`
	Present   bool      `json:"present"`
	ClassName string    `json:"class_name"`
}

// History is a student's reconstructed attendance over the recent past.
type History struct {
	StudentName  string          `json:"student_name"`
	ClassName    string          `json:"class_name"`
	Records      []HistoryRecord `json:"records"`
	PresentCount int             `json:"present_count"`
	AbsentCount  int             `json:"absent_count"`
	Percentage   int             `json:"percentage"`
}

// AttendanceService rebuilds per-student presence from the raw
// registration rows of the student's class.
type AttendanceService struct {
	students studentGetter
	classes  classGetter
	regs     classHistoryStore
}

func NewAttendanceService(students studentGetter, classes classGetter, regs classHistoryStore) *AttendanceService {
	return &AttendanceService{students: students, classes: classes, regs: regs}
}

// History returns the student's presence across the last registrations of
// their class, newest first. Presence is an exact match of the student's
// current name against the attendee snapshot, so renaming a student makes
// older records read as absent — a known limitation of the data model.
func (s *AttendanceService) History(studentID uint) (*History, error) {
	student, err := s.students.GetByID(studentID)
	if err != nil {
		return nil, err
	}
	className := domain.UnknownClassName
	if class, err := s.classes.GetByID(student.ClassID); err == nil {
		className = class.Name
	}

	regs, err := s.regs.ListRecentByClass(student.ClassID, domain.AttendanceHistoryLimit)
	if err != nil {
		return nil, err
	}

	h := &History{StudentName: student.Name, ClassName: className}
	for _, reg := range regs {
		present := false
		for _, name := range reg.PresentStudents {
			if name == student.Name {
				present = true
				break
			}
		}
		if present {
			h.PresentCount++
		}
		h.Records = append(h.Records, HistoryRecord{
			Date:      reg.RegistrationDate,
			Present:   present,
			ClassName: className,
		})
	}
	h.AbsentCount = len(h.Records) - h.PresentCount
	if len(h.Records) > 0 {
		h.Percentage = int(math.Round(100 * float64(h.PresentCount) / float64(len(h.Records))))
	}
	return h, nil
}
