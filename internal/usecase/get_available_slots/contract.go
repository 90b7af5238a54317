package get_available_slots

import (
	"context"
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	// GetByID получает врача вместе с недельным шаблоном доступности
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByDoctor(ctx context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
