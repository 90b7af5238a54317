package create_appointment

import (
	"errors"
	"net/http"

	"github.com/abhinavxdd/MediQueue/internal/api/handlers"
	"github.com/abhinavxdd/MediQueue/internal/api/middleware"
	apptModels "github.com/abhinavxdd/MediQueue/internal/service/appointments/models"
	createAppointment "github.com/abhinavxdd/MediQueue/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgSlotNotAvailable   = "Slot is not available"
	msgSlotNotInTemplate  = "slot is not in the doctor's schedule"
	msgDoctorNotFound     = "doctor not found"
	msgClinicNotFound     = "clinic not found"
	msgInvalidDate        = "appointment date must not be in the past"
	msgUnauthorized       = "authentication required"
	msgPatientsOnly       = "only patients can book appointments"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Приёмы записывают только пациенты; ID пациента берем из токена
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if !actor.IsPatient() {
		h.logger.Warn("POST /appointments - Non-patient actor: actor_id=%d, role=%s", actor.ID, actor.Role)
		handlers.RespondForbidden(w, msgPatientsOnly)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor.ID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: patient_id=%d, doctor_id=%d, date=%s, time=%s",
				actor.ID, req.DoctorID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrSlotNotInTemplate):
			h.logger.Warn("POST /appointments - Slot not in template: doctor_id=%d, date=%s, time=%s",
				req.DoctorID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotNotInTemplate)

		case errors.Is(err, createAppointment.ErrDoctorNotFound):
			h.logger.Warn("POST /appointments - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createAppointment.ErrClinicNotFound):
			h.logger.Warn("POST /appointments - Clinic not found: clinic_id=%d", req.ClinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: patient_id=%d, date=%s", actor.ID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: patient_id=%d, error=%v", actor.ID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: patient_id=%d, doctor_id=%d, error=%v",
				actor.ID, req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := apptModels.FromDomainAppointment(result.Appointment)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, patient_id=%d, doctor_id=%d",
		result.Appointment.ID, actor.ID, req.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
