package update_appointment

import (
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	rescheduleAppointment "github.com/abhinavxdd/MediQueue/internal/usecase/reschedule_appointment"
	"github.com/abhinavxdd/MediQueue/pkg/types"
)

// UpdateAppointmentRequest HTTP request model.
// Все поля опциональны: не переданные значения остаются прежними.
type UpdateAppointmentRequest struct {
	Date      *string `json:"date,omitempty"`      // "2026-03-15"
	StartTime *string `json:"startTime,omitempty"` // "10:00"
	Reason    *string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID int64, actor domain.Actor) (*rescheduleAppointment.Request, error) {
	req := &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		Actor:         actor,
		Reason:        r.Reason,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}
