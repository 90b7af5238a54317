package get_clinics

import (
	"context"

	"github.com/abhinavxdd/MediQueue/internal/service/clinics/models"
)

type ClinicService interface {
	List(ctx context.Context, city *string) (*models.ClinicListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
