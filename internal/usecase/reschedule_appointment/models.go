package reschedule_appointment

import (
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	"github.com/abhinavxdd/MediQueue/pkg/types"
)

// Request модель запроса на изменение приёма.
// Поля Date, StartTime и Reason опциональны: не переданные значения
// остаются прежними.
type Request struct {
	AppointmentID int64        // ID приёма
	Actor         domain.Actor // Кто выполняет изменение (из токена)

	Date      *time.Time        // Новая дата (опционально)
	StartTime *types.TimeString // Новое время начала (опционально)
	Reason    *string           // Новая причина обращения (опционально)
}

// Response модель ответа с обновленным приёмом
type Response struct {
	Appointment *domain.Appointment
}
