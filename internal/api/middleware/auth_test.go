package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavxdd/MediQueue/internal/domain"
)

const testSecret = "test-secret"

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func signToken(t *testing.T, secret, subject, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// authorize прогоняет запрос через middleware и возвращает статус ответа
// и актора, оказавшегося в контексте
func authorize(t *testing.T, authHeader string) (int, *domain.Actor) {
	t.Helper()

	var actor *domain.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a, ok := ActorFromContext(r.Context()); ok {
			actor = &a
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/1", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	Auth(testSecret, nopLogger{})(next).ServeHTTP(rec, req)
	return rec.Code, actor
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, "15", "patient")

	status, actor := authorize(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)

	require.NotNil(t, actor)
	assert.Equal(t, int64(15), actor.ID)
	assert.Equal(t, domain.RolePatient, actor.Role)
}

func TestAuth_DoctorRole(t *testing.T) {
	token := signToken(t, testSecret, "7", "doctor")

	status, actor := authorize(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)

	require.NotNil(t, actor)
	assert.Equal(t, domain.RoleDoctor, actor.Role)
}

func TestAuth_MissingHeader(t *testing.T) {
	status, actor := authorize(t, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Nil(t, actor)
}

func TestAuth_NotBearer(t *testing.T) {
	status, _ := authorize(t, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", "15", "patient")

	status, actor := authorize(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Nil(t, actor)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		Role: "patient",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "15",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	status, _ := authorize(t, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuth_UnknownRole(t *testing.T) {
	token := signToken(t, testSecret, "15", "admin")

	status, actor := authorize(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Nil(t, actor)
}

func TestAuth_NonNumericSubject(t *testing.T) {
	token := signToken(t, testSecret, "not-a-number", "patient")

	status, _ := authorize(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, status)
}
