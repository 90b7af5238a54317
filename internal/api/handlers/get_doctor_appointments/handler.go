package get_doctor_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/abhinavxdd/MediQueue/internal/api/handlers"
	"github.com/abhinavxdd/MediQueue/internal/api/middleware"
	"github.com/abhinavxdd/MediQueue/internal/domain"
	"github.com/abhinavxdd/MediQueue/internal/service/appointments"
	"github.com/abhinavxdd/MediQueue/internal/service/appointments/models"
	"github.com/abhinavxdd/MediQueue/pkg/ptr"
)

const (
	msgInvalidStatus = "invalid status filter"
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgForbidden     = "access denied"
	msgUnauthorized  = "authentication required"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/doctor
// Query params: status (optional), date (optional, YYYY-MM-DD)
// Расписание врача определяется актором из токена
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/doctor - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req := &models.GetDoctorAppointmentsRequest{
		Actor:    actor,
		DoctorID: actor.ID,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /appointments/doctor - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	result, err := h.service.GetDoctorAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments/doctor - Access denied: actor_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments/doctor - Invalid status: doctor_id=%d", actor.ID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /appointments/doctor - Failed to get appointments: doctor_id=%d, error=%v",
				actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/doctor - Appointments retrieved successfully: doctor_id=%d, count=%d",
		actor.ID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
