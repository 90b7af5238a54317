package get_clinic

import (
	"context"

	"github.com/abhinavxdd/MediQueue/internal/service/clinics/models"
)

type ClinicService interface {
	GetByID(ctx context.Context, id int64) (*models.ClinicResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
