package get_doctors

import (
	"context"

	"github.com/abhinavxdd/MediQueue/internal/service/doctors/models"
)

type DoctorService interface {
	List(ctx context.Context, req *models.GetDoctorsRequest) (*models.DoctorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
