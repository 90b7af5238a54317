package cancel_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavxdd/MediQueue/internal/api/handlers"
	"github.com/abhinavxdd/MediQueue/internal/api/middleware"
	"github.com/abhinavxdd/MediQueue/internal/domain"
	"github.com/abhinavxdd/MediQueue/internal/service/appointments"
	"github.com/abhinavxdd/MediQueue/internal/service/appointments/models"
)

const testSecret = "test-secret"

type serviceStub struct {
	resp   *models.AppointmentResponse
	err    error
	gotID  int64
	gotReq *models.CancelAppointmentRequest
}

func (s *serviceStub) Cancel(_ context.Context, appointmentID int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.gotID = appointmentID
	s.gotReq = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func patientToken(t *testing.T, id string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id,
		"role": "patient",
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// doRequest прогоняет запрос через роутер с auth middleware, как в продакшене
func doRequest(t *testing.T, svc *serviceStub, body string, token string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc, nopLogger{})

	router := mux.NewRouter()
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth(testSecret, nopLogger{}))
	protected.HandleFunc("/appointments/{appointmentId}/cancel", handler.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/10/cancel", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func TestHandle_Success(t *testing.T) {
	reason := "Feeling better"
	cancelledBy := "patient"
	svc := &serviceStub{
		resp: &models.AppointmentResponse{
			ID:           10,
			Status:       string(domain.StatusCancelled),
			CancelledBy:  &cancelledBy,
			CancelReason: &reason,
		},
	}
	rec := doRequest(t, svc, `{"reason": "Feeling better"}`, patientToken(t, "1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(10), svc.gotID)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "Feeling better", svc.gotReq.Reason)
	assert.Equal(t, domain.Actor{ID: 1, Role: domain.RolePatient}, svc.gotReq.Actor)

	// Тело ответа - отмененный приём с данными отмены
	var body models.AppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(10), body.ID)
	assert.Equal(t, string(domain.StatusCancelled), body.Status)
	require.NotNil(t, body.CancelledBy)
	assert.Equal(t, "patient", *body.CancelledBy)
	require.NotNil(t, body.CancelReason)
	assert.Equal(t, "Feeling better", *body.CancelReason)
}

func TestHandle_EmptyBodyAllowed(t *testing.T) {
	svc := &serviceStub{resp: &models.AppointmentResponse{ID: 10, Status: string(domain.StatusCancelled)}}
	rec := doRequest(t, svc, "", patientToken(t, "1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.Empty(t, svc.gotReq.Reason)
}

func TestHandle_InvalidTransition(t *testing.T) {
	svc := &serviceStub{err: &domain.InvalidTransitionError{Action: "cancel", Status: domain.StatusCompleted}}
	rec := doRequest(t, svc, "", patientToken(t, "1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot cancel a completed appointment", errorMessage(t, rec))
}

func TestHandle_AccessDenied(t *testing.T) {
	svc := &serviceStub{err: appointments.ErrAccessDenied}
	rec := doRequest(t, svc, "", patientToken(t, "99"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandle_NotFound(t *testing.T) {
	svc := &serviceStub{err: appointments.ErrAppointmentNotFound}
	rec := doRequest(t, svc, "", patientToken(t, "1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_Unauthenticated(t *testing.T) {
	svc := &serviceStub{}
	rec := doRequest(t, svc, "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, svc.gotReq)
}
