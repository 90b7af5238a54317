package create_appointment

import (
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	"github.com/abhinavxdd/MediQueue/pkg/types"
)

// Request модель запроса на создание приёма
type Request struct {
	PatientID int64            // ID пациента (из токена)
	DoctorID  int64            // ID врача
	ClinicID  int64            // ID клиники
	Date      time.Time        // Дата приёма (без времени)
	StartTime types.TimeString // Метка слота - время начала (например, "09:00")
	Reason    string           // Причина обращения (обязательна)
}

// Response модель ответа с созданным приёмом
type Response struct {
	Appointment *domain.Appointment
}
