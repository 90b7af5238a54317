package update_doctor_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhinavxdd/MediQueue/internal/api/handlers"
	"github.com/abhinavxdd/MediQueue/internal/api/middleware"
	"github.com/abhinavxdd/MediQueue/internal/service/doctors"
)

const (
	msgInvalidDoctorID    = "invalid doctor ID"
	msgInvalidRequestBody = "invalid request body"
	msgDoctorNotFound     = "doctor not found"
	msgForbidden          = "access denied"
	msgUnauthorized       = "authentication required"
)

type Handler struct {
	service DoctorService
	logger  Logger
}

func NewHandler(service DoctorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/doctors/{doctorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorIDStr := vars["doctorId"]

	doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /doctors/{id}/availability - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	// Актор кладется в контекст auth middleware
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /doctors/{id}/availability - Missing actor in context: doctor_id=%d", doctorID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := req.ToServiceRequest(doctorID, actor)

	result, err := h.service.UpdateTemplate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, doctors.ErrDoctorNotFound):
			h.logger.Warn("PUT /doctors/{id}/availability - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, doctors.ErrAccessDenied):
			h.logger.Warn("PUT /doctors/{id}/availability - Access denied: doctor_id=%d, actor_id=%d",
				doctorID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, doctors.ErrInvalidTemplate):
			h.logger.Warn("PUT /doctors/{id}/availability - Invalid template: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /doctors/{id}/availability - Failed to update template: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /doctors/{id}/availability - Template updated successfully: doctor_id=%d, slots=%d",
		doctorID, len(req.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
