package create_appointment

import (
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	createAppointment "github.com/abhinavxdd/MediQueue/internal/usecase/create_appointment"
	"github.com/abhinavxdd/MediQueue/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	DoctorID  int64  `json:"doctorId"`
	ClinicID  int64  `json:"clinicId"`
	Date      string `json:"date"`      // "2026-03-15"
	StartTime string `json:"startTime"` // "10:00"
	Reason    string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// PatientID берется из токена, а не из тела запроса.
func (r *CreateAppointmentRequest) ToUseCaseRequest(patientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientID: patientID,
		DoctorID:  r.DoctorID,
		ClinicID:  r.ClinicID,
		Date:      date,
		StartTime: startTime,
		Reason:    r.Reason,
	}, nil
}
