package domain

import (
	"time"

	"github.com/abhinavxdd/MediQueue/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// CancelledBy describes which side cancelled the appointment
type CancelledBy string

const (
	CancelledByPatient CancelledBy = "patient"
	CancelledByDoctor  CancelledBy = "doctor"
)

// Appointment represents a patient's appointment with a doctor
type Appointment struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	ClinicID  int64

	// Дата приёма без компонента времени; время задается слотом
	Date      time.Time
	StartTime types.TimeString
	Reason    string
	Status    AppointmentStatus

	// Denormalized data for display and history
	DoctorName           string
	DoctorSpecialization string
	ClinicName           string
	ClinicAddress        string

	CancelledBy  *CancelledBy
	CancelReason *string
	CancelledAt  *time.Time

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled returns true if the appointment is still scheduled
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsCompleted returns true if the appointment has been completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// IsTerminal returns true if no further transitions are allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// OccupiesSlot returns true if the appointment holds a claim on its slot.
// Отмененные приёмы слот не занимают.
func (a *Appointment) OccupiesSlot() bool {
	return a.Status != StatusCancelled
}

// PatientAppointmentsFilter фильтр для выборки приёмов пациента
type PatientAppointmentsFilter struct {
	PatientID int64              // Обязательный параметр
	Status    *AppointmentStatus // Фильтр по статусу (опционально)
}

// DoctorAppointmentsFilter фильтр для выборки приёмов врача
type DoctorAppointmentsFilter struct {
	DoctorID  int64              // Обязательный параметр
	Status    *AppointmentStatus // Фильтр по статусу (опционально)
	Date      *time.Time         // Фильтр по конкретной дате (опционально)
	ExcludeID *int64             // Исключить приём с этим ID (для переноса)

	// OccupiedOnly оставляет только приёмы, занимающие слот (status != cancelled).
	// Используется при расчете доступности и проверке конфликтов.
	OccupiedOnly bool
}
