package get_clinics

import (
	"net/http"

	"github.com/abhinavxdd/MediQueue/internal/api/handlers"
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

// Handle GET /api/v1/clinics
// Query params: city (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var city *string
	if cityStr := r.URL.Query().Get("city"); cityStr != "" {
		city = &cityStr
	}

	result, err := h.service.List(r.Context(), city)
	if err != nil {
		h.logger.Error("GET /clinics - Failed to list clinics: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clinics - Clinics retrieved successfully: count=%d", len(result.Clinics))
	handlers.RespondJSON(w, http.StatusOK, result)
}
