package complete_appointment

import (
	"github.com/abhinavxdd/MediQueue/internal/domain"
	"github.com/abhinavxdd/MediQueue/internal/service/appointments/models"
)

// CompleteAppointmentRequest HTTP request model
type CompleteAppointmentRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CompleteAppointmentRequest) ToServiceRequest(actor domain.Actor) *models.CompleteAppointmentRequest {
	notes := ""
	if r.Notes != nil {
		notes = *r.Notes
	}

	return &models.CompleteAppointmentRequest{
		Actor: actor,
		Notes: notes,
	}
}
