package models

import (
	"errors"
	"strings"
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
)

var (
	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// weekdays допустимые значения дня недели во внешнем API
var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ToDomainWeekday конвертирует строку в time.Weekday с валидацией
func ToDomainWeekday(s string) (time.Weekday, error) {
	weekday, ok := weekdays[strings.ToLower(s)]
	if !ok {
		return 0, ErrInvalidWeekday
	}
	return weekday, nil
}

// Request модели

// TemplateSlotPayload один слот недельного шаблона во внешнем представлении
type TemplateSlotPayload struct {
	Weekday   string `json:"weekday"`   // "monday" ... "sunday"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:30"
}

// UpdateTemplateRequest запрос на замену недельного шаблона доступности
type UpdateTemplateRequest struct {
	Actor    domain.Actor
	DoctorID int64
	Slots    []TemplateSlotPayload
}

// GetDoctorsRequest запрос на поиск врачей в каталоге
type GetDoctorsRequest struct {
	Keyword  *string // Поиск по имени или специализации (опционально)
	ClinicID *int64  // Фильтр по клинике (опционально)
}

// Response модели

// TemplateSlotResponse слот шаблона в ответе
type TemplateSlotResponse struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DoctorResponse ответ с данными врача
type DoctorResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Specialization  string  `json:"specialization"`
	ClinicID        *int64  `json:"clinicId,omitempty"`
	Experience      int     `json:"experience"`
	Bio             *string `json:"bio,omitempty"`
	ConsultationFee float64 `json:"consultationFee"`

	Template []TemplateSlotResponse `json:"template,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DoctorListResponse ответ со списком врачей
type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
}

// Методы конвертации

// FromDomainDoctor конвертирует domain модель в DTO
func FromDomainDoctor(d *domain.Doctor) *DoctorResponse {
	if d == nil {
		return nil
	}

	resp := &DoctorResponse{
		ID:              d.ID,
		Name:            d.Name,
		Email:           d.Email,
		Phone:           d.Phone,
		Specialization:  d.Specialization,
		ClinicID:        d.ClinicID,
		Experience:      d.Experience,
		Bio:             d.Bio,
		ConsultationFee: d.ConsultationFee,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}

	for _, slot := range d.Template {
		resp.Template = append(resp.Template, TemplateSlotResponse{
			Weekday:   strings.ToLower(slot.Weekday.String()),
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		})
	}

	return resp
}

// FromDomainDoctorList конвертирует список domain моделей в DTO
func FromDomainDoctorList(doctors []*domain.Doctor) *DoctorListResponse {
	if doctors == nil {
		return &DoctorListResponse{
			Doctors: []DoctorResponse{},
		}
	}

	resp := &DoctorListResponse{
		Doctors: make([]DoctorResponse, len(doctors)),
	}

	for i, doctor := range doctors {
		if doctorResp := FromDomainDoctor(doctor); doctorResp != nil {
			resp.Doctors[i] = *doctorResp
		}
	}

	return resp
}
