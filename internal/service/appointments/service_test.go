package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	apptRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/appointment"
	"github.com/abhinavxdd/MediQueue/internal/service/appointments/models"
	"github.com/abhinavxdd/MediQueue/pkg/ptr"
	"github.com/abhinavxdd/MediQueue/pkg/types"
)

type apptRepoStub struct {
	appointment *domain.Appointment
	getErr      error
	byPatient   []*domain.Appointment
	byDoctor    []*domain.Appointment

	patientFilter *domain.PatientAppointmentsFilter
	doctorFilter  *domain.DoctorAppointmentsFilter

	cancelledID    int64
	cancelledBy    domain.CancelledBy
	cancelReason   string
	completedID    int64
	completedNotes string
	cancelCalled   bool
	completeCalled bool
}

func (s *apptRepoStub) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	return s.appointment, s.getErr
}

func (s *apptRepoStub) GetByPatient(_ context.Context, filter domain.PatientAppointmentsFilter) ([]*domain.Appointment, error) {
	s.patientFilter = &filter
	return s.byPatient, nil
}

func (s *apptRepoStub) GetByDoctor(_ context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	s.doctorFilter = &filter
	return s.byDoctor, nil
}

func (s *apptRepoStub) Cancel(_ context.Context, id int64, cancelledBy domain.CancelledBy, reason string) error {
	s.cancelCalled = true
	s.cancelledID = id
	s.cancelledBy = cancelledBy
	s.cancelReason = reason
	// Имитируем UPDATE: повторное чтение видит отмененный приём
	now := time.Now()
	s.appointment.Status = domain.StatusCancelled
	s.appointment.CancelledBy = &cancelledBy
	s.appointment.CancelReason = &reason
	s.appointment.CancelledAt = &now
	return nil
}

func (s *apptRepoStub) Complete(_ context.Context, id int64, notes string) error {
	s.completeCalled = true
	s.completedID = id
	s.completedNotes = notes
	s.appointment.Status = domain.StatusCompleted
	s.appointment.Notes = &notes
	return nil
}

// passthroughTxManager выполняет функции без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func testAppointment(t *testing.T) *domain.Appointment {
	t.Helper()
	return &domain.Appointment{
		ID:        10,
		PatientID: 1,
		DoctorID:  2,
		ClinicID:  3,
		Date:      time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime: mustTime(t, "09:00"),
		Reason:    "Checkup",
		Status:    domain.StatusScheduled,
	}
}

func patient(id int64) domain.Actor {
	return domain.Actor{ID: id, Role: domain.RolePatient}
}

func doctor(id int64) domain.Actor {
	return domain.Actor{ID: id, Role: domain.RoleDoctor}
}

func newTestService(repo *apptRepoStub) *Service {
	return NewService(repo, passthroughTxManager{}, nopLogger{})
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{"owning patient", patient(1), nil},
		{"assigned doctor", doctor(2), nil},
		{"other patient", patient(99), ErrAccessDenied},
		{"other doctor", doctor(99), ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&apptRepoStub{appointment: testAppointment(t)})
			resp, err := svc.GetByID(context.Background(), 10, tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(10), resp.ID)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&apptRepoStub{getErr: apptRepo.ErrAppointmentNotFound})
	_, err := svc.GetByID(context.Background(), 10, patient(1))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_ByPatient(t *testing.T) {
	repo := &apptRepoStub{appointment: testAppointment(t)}
	svc := newTestService(repo)

	resp, err := svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{
		Actor:  patient(1),
		Reason: "Feeling better",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), repo.cancelledID)
	assert.Equal(t, domain.CancelledByPatient, repo.cancelledBy)
	assert.Equal(t, "Feeling better", repo.cancelReason)

	// Ответ содержит обновленный приём с данными отмены
	require.NotNil(t, resp)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancelledBy)
	assert.Equal(t, string(domain.CancelledByPatient), *resp.CancelledBy)
	require.NotNil(t, resp.CancelReason)
	assert.Equal(t, "Feeling better", *resp.CancelReason)
}

func TestCancel_ByDoctorDefaultReason(t *testing.T) {
	repo := &apptRepoStub{appointment: testAppointment(t)}
	svc := newTestService(repo)

	resp, err := svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{Actor: doctor(2)})
	require.NoError(t, err)

	assert.Equal(t, domain.CancelledByDoctor, repo.cancelledBy)
	assert.Equal(t, domain.DefaultCancelReason, repo.cancelReason)
	require.NotNil(t, resp.CancelReason)
	assert.Equal(t, domain.DefaultCancelReason, *resp.CancelReason)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	appt := testAppointment(t)
	appt.Status = domain.StatusCancelled
	repo := &apptRepoStub{appointment: appt}
	svc := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{Actor: patient(1)})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "Cannot cancel a cancelled appointment", err.Error())
	assert.False(t, repo.cancelCalled)
}

func TestCancel_CompletedAppointment(t *testing.T) {
	appt := testAppointment(t)
	appt.Status = domain.StatusCompleted
	svc := newTestService(&apptRepoStub{appointment: appt})

	_, err := svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{Actor: patient(1)})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "Cannot cancel a completed appointment", err.Error())
}

func TestCancel_AccessCheckedBeforeStatus(t *testing.T) {
	// Чужой завершённый приём: должен вернуться отказ в доступе,
	// а не ошибка перехода статуса
	appt := testAppointment(t)
	appt.Status = domain.StatusCompleted
	svc := newTestService(&apptRepoStub{appointment: appt})

	_, err := svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{Actor: patient(99)})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.NotErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := &apptRepoStub{appointment: testAppointment(t)}
	svc := newTestService(repo)

	long := make([]byte, domain.MaxCancelReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{
		Actor:  patient(1),
		Reason: string(long),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, repo.cancelCalled)
}

func TestComplete_ByAssignedDoctor(t *testing.T) {
	repo := &apptRepoStub{appointment: testAppointment(t)}
	svc := newTestService(repo)

	resp, err := svc.Complete(context.Background(), 10, &models.CompleteAppointmentRequest{
		Actor: doctor(2),
		Notes: "Prescribed rest",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), repo.completedID)
	assert.Equal(t, "Prescribed rest", repo.completedNotes)

	// Ответ содержит завершенный приём с заметками врача
	require.NotNil(t, resp)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "Prescribed rest", *resp.Notes)
}

func TestComplete_PatientForbidden(t *testing.T) {
	repo := &apptRepoStub{appointment: testAppointment(t)}
	svc := newTestService(repo)

	_, err := svc.Complete(context.Background(), 10, &models.CompleteAppointmentRequest{Actor: patient(1)})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.completeCalled)
}

func TestComplete_OtherDoctorForbidden(t *testing.T) {
	svc := newTestService(&apptRepoStub{appointment: testAppointment(t)})

	_, err := svc.Complete(context.Background(), 10, &models.CompleteAppointmentRequest{Actor: doctor(99)})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestComplete_AlreadyCompleted(t *testing.T) {
	appt := testAppointment(t)
	appt.Status = domain.StatusCompleted
	svc := newTestService(&apptRepoStub{appointment: appt})

	_, err := svc.Complete(context.Background(), 10, &models.CompleteAppointmentRequest{Actor: doctor(2)})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "Cannot complete a completed appointment", err.Error())
}

func TestGetPatientAppointments(t *testing.T) {
	repo := &apptRepoStub{byPatient: []*domain.Appointment{testAppointment(t)}}
	svc := newTestService(repo)

	resp, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		Actor:     patient(1),
		PatientID: 1,
		Status:    ptr.Ptr("scheduled"),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Appointments, 1)
	require.NotNil(t, repo.patientFilter.Status)
	assert.Equal(t, domain.StatusScheduled, *repo.patientFilter.Status)
}

func TestGetPatientAppointments_ForeignHistory(t *testing.T) {
	svc := newTestService(&apptRepoStub{})

	_, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		Actor:     patient(99),
		PatientID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetPatientAppointments_InvalidStatus(t *testing.T) {
	svc := newTestService(&apptRepoStub{})

	_, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		Actor:     patient(1),
		PatientID: 1,
		Status:    ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDoctorAppointments(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	repo := &apptRepoStub{byDoctor: []*domain.Appointment{testAppointment(t)}}
	svc := newTestService(repo)

	resp, err := svc.GetDoctorAppointments(context.Background(), &models.GetDoctorAppointmentsRequest{
		Actor:    doctor(2),
		DoctorID: 2,
		Date:     &date,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Appointments, 1)
	require.NotNil(t, repo.doctorFilter.Date)
	assert.Equal(t, date, *repo.doctorFilter.Date)
}

func TestGetDoctorAppointments_PatientForbidden(t *testing.T) {
	svc := newTestService(&apptRepoStub{})

	_, err := svc.GetDoctorAppointments(context.Background(), &models.GetDoctorAppointmentsRequest{
		Actor:    patient(2),
		DoctorID: 2,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
