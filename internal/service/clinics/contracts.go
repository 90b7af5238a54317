package clinics

import (
	"context"

	"github.com/abhinavxdd/MediQueue/internal/domain"
)

// ClinicRepository интерфейс репозитория клиник
type ClinicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Clinic, error)
	List(ctx context.Context, city *string) ([]*domain.Clinic, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
