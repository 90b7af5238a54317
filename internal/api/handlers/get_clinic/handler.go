package get_clinic

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhinavxdd/MediQueue/internal/api/handlers"
	"github.com/abhinavxdd/MediQueue/internal/service/clinics"
)

const (
	msgInvalidClinicID = "invalid clinic ID"
	msgClinicNotFound  = "clinic not found"
)

type Handler struct {
	service ClinicService
	logger  Logger
}

func NewHandler(service ClinicService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clinics/{clinicId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicIDStr := vars["clinicId"]

	clinicID, err := strconv.ParseInt(clinicIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinics/{id} - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	result, err := h.service.GetByID(r.Context(), clinicID)
	if err != nil {
		switch {
		case errors.Is(err, clinics.ErrClinicNotFound):
			h.logger.Warn("GET /clinics/{id} - Clinic not found: clinic_id=%d", clinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		default:
			h.logger.Error("GET /clinics/{id} - Failed to get clinic: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clinics/{id} - Clinic retrieved successfully: clinic_id=%d", clinicID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
