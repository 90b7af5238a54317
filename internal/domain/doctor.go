package domain

import (
	"time"

	"github.com/abhinavxdd/MediQueue/pkg/types"
)

// Doctor represents a doctor in the clinic directory
type Doctor struct {
	ID             int64
	Name           string
	Email          string
	Phone          string
	Specialization string
	ClinicID       *int64
	Experience     int // лет практики
	Bio            *string
	ConsultationFee float64
	IsActive       bool

	// Template недельное расписание врача, упорядоченное по (weekday, position)
	Template []TemplateSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateSlot один слот недельного шаблона доступности врача.
// Шаблон не зависит от конкретных дат; занятость слота всегда
// вычисляется по таблице приёмов, а не хранится здесь.
type TemplateSlot struct {
	Weekday   time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	Position  int
}

// SlotsForWeekday возвращает слоты шаблона на указанный день недели
// в порядке, заданном шаблоном
func (d *Doctor) SlotsForWeekday(weekday time.Weekday) []TemplateSlot {
	slots := make([]TemplateSlot, 0)
	for _, slot := range d.Template {
		if slot.Weekday == weekday {
			slots = append(slots, slot)
		}
	}
	return slots
}

// HasSlot возвращает true, если в шаблоне на указанный день недели
// есть слот с таким временем начала
func (d *Doctor) HasSlot(weekday time.Weekday, startTime types.TimeString) bool {
	for _, slot := range d.SlotsForWeekday(weekday) {
		if slot.StartTime.Equal(startTime) {
			return true
		}
	}
	return false
}

// DoctorsFilter фильтр для поиска врачей в каталоге
type DoctorsFilter struct {
	Keyword  *string // Поиск по имени или специализации (опционально)
	ClinicID *int64  // Фильтр по клинике (опционально)
}
