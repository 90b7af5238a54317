package appointments

import (
	"context"

	"github.com/abhinavxdd/MediQueue/internal/domain"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByPatient(ctx context.Context, filter domain.PatientAppointmentsFilter) ([]*domain.Appointment, error)
	GetByDoctor(ctx context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, cancelledBy domain.CancelledBy, reason string) error
	Complete(ctx context.Context, id int64, notes string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
