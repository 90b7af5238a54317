package get_available_slots

import (
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
)

// Request модель запроса на получение слотов врача
type Request struct {
	DoctorID int64     // ID врача
	Date     time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	DoctorID int64         // ID врача
	Date     time.Time     // Дата, на которую запрашивались слоты
	Slots    []domain.Slot // Слоты в порядке шаблона с признаком доступности
}
