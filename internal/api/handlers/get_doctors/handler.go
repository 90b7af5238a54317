package get_doctors

import (
	"net/http"
	"strconv"

	"github.com/abhinavxdd/MediQueue/internal/api/handlers"
	"github.com/abhinavxdd/MediQueue/internal/service/doctors/models"
)

const (
	msgInvalidClinicID = "invalid clinic ID"
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

// Handle GET /api/v1/doctors
// Query params: search (optional), clinicId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetDoctorsRequest{}

	// Поиск по имени или специализации
	if search := r.URL.Query().Get("search"); search != "" {
		req.Keyword = &search
	}

	// Фильтр по клинике
	if clinicIDStr := r.URL.Query().Get("clinicId"); clinicIDStr != "" {
		clinicID, err := strconv.ParseInt(clinicIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /doctors - Invalid clinic ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClinicID)
			return
		}
		req.ClinicID = &clinicID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /doctors - Failed to list doctors: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctors - Doctors retrieved successfully: count=%d", len(result.Doctors))
	handlers.RespondJSON(w, http.StatusOK, result)
}
