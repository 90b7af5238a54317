package models

import (
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
)

// ClinicResponse ответ с данными клиники
type ClinicResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClinicListResponse ответ со списком клиник
type ClinicListResponse struct {
	Clinics []ClinicResponse `json:"clinics"`
}

// FromDomainClinic конвертирует domain модель в DTO
func FromDomainClinic(c *domain.Clinic) *ClinicResponse {
	if c == nil {
		return nil
	}

	return &ClinicResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		City:      c.City,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainClinicList конвертирует список domain моделей в DTO
func FromDomainClinicList(clinics []*domain.Clinic) *ClinicListResponse {
	if clinics == nil {
		return &ClinicListResponse{
			Clinics: []ClinicResponse{},
		}
	}

	resp := &ClinicListResponse{
		Clinics: make([]ClinicResponse, len(clinics)),
	}

	for i, clinic := range clinics {
		if clinicResp := FromDomainClinic(clinic); clinicResp != nil {
			resp.Clinics[i] = *clinicResp
		}
	}

	return resp
}
