package update_doctor_availability

import (
	"context"

	"github.com/abhinavxdd/MediQueue/internal/service/doctors/models"
)

type DoctorService interface {
	UpdateTemplate(ctx context.Context, req *models.UpdateTemplateRequest) (*models.DoctorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
