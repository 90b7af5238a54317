package models

import (
	"errors"
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену приёма
type CancelAppointmentRequest struct {
	Actor  domain.Actor
	Reason string
}

// CompleteAppointmentRequest запрос на завершение приёма врачом
type CompleteAppointmentRequest struct {
	Actor domain.Actor
	Notes string
}

// GetPatientAppointmentsRequest запрос на получение приёмов пациента
type GetPatientAppointmentsRequest struct {
	Actor     domain.Actor
	PatientID int64
	Status    *string // Фильтр по статусу (опционально)
}

// GetDoctorAppointmentsRequest запрос на получение приёмов врача
type GetDoctorAppointmentsRequest struct {
	Actor    domain.Actor
	DoctorID int64
	Status   *string    // Фильтр по статусу (опционально)
	Date     *time.Time // Фильтр по дате (опционально)
}

// Response модели

// AppointmentResponse ответ с данными приёма
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"patientId"`
	DoctorID  int64  `json:"doctorId"`
	ClinicID  int64  `json:"clinicId"`
	Date      string `json:"date"`      // "2026-03-15"
	StartTime string `json:"startTime"` // "10:00"
	Reason    string `json:"reason"`
	Status    string `json:"status"`

	// Денормализованные данные для отображения истории
	DoctorName           string `json:"doctorName"`
	DoctorSpecialization string `json:"doctorSpecialization"`
	ClinicName           string `json:"clinicName"`
	ClinicAddress        string `json:"clinicAddress"`

	CancelledBy  *string `json:"cancelledBy,omitempty"`
	CancelReason *string `json:"cancelReason,omitempty"`
	CancelledAt  *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком приёмов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                   a.ID,
		PatientID:            a.PatientID,
		DoctorID:             a.DoctorID,
		ClinicID:             a.ClinicID,
		Date:                 a.Date.Format(domain.DateFormat),
		StartTime:            a.StartTime.String(),
		Reason:               a.Reason,
		Status:               string(a.Status),
		DoctorName:           a.DoctorName,
		DoctorSpecialization: a.DoctorSpecialization,
		ClinicName:           a.ClinicName,
		ClinicAddress:        a.ClinicAddress,
		CancelReason:         a.CancelReason,
		Notes:                a.Notes,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}

	if a.CancelledBy != nil {
		cancelledBy := string(*a.CancelledBy)
		resp.CancelledBy = &cancelledBy
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	if !domain.IsValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return domain.AppointmentStatus(status), nil
}
