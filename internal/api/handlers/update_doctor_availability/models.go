package update_doctor_availability

import (
	"github.com/abhinavxdd/MediQueue/internal/domain"
	"github.com/abhinavxdd/MediQueue/internal/service/doctors/models"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	Slots []SlotPayload `json:"slots"`
}

// SlotPayload один слот недельного шаблона
type SlotPayload struct {
	Weekday   string `json:"weekday"`   // "monday" ... "sunday"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:30"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(doctorID int64, actor domain.Actor) *models.UpdateTemplateRequest {
	slots := make([]models.TemplateSlotPayload, len(r.Slots))
	for i, slot := range r.Slots {
		slots[i] = models.TemplateSlotPayload{
			Weekday:   slot.Weekday,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
	}

	return &models.UpdateTemplateRequest{
		Actor:    actor,
		DoctorID: doctorID,
		Slots:    slots,
	}
}
