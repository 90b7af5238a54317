package cancel_appointment

import (
	"github.com/abhinavxdd/MediQueue/internal/domain"
	"github.com/abhinavxdd/MediQueue/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(actor domain.Actor) *models.CancelAppointmentRequest {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &models.CancelAppointmentRequest{
		Actor:  actor,
		Reason: reason,
	}
}
