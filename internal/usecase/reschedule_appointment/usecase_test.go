package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	appointmentRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/appointment"
	"github.com/abhinavxdd/MediQueue/pkg/ptr"
	"github.com/abhinavxdd/MediQueue/pkg/types"
)

type appointmentRepoStub struct {
	appointment *domain.Appointment
	getErr      error
	existing    []*domain.Appointment
	gotFilter   *domain.DoctorAppointmentsFilter
	updateErr   error
	updated     *domain.Appointment
}

func (s *appointmentRepoStub) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	return s.appointment, s.getErr
}

func (s *appointmentRepoStub) GetByDoctor(_ context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	s.gotFilter = &filter
	return s.existing, nil
}

func (s *appointmentRepoStub) UpdateSchedule(_ context.Context, _ int64, appt *domain.Appointment) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	updated := *appt
	s.updated = &updated
	return nil
}

type doctorRepoStub struct {
	doctor *domain.Doctor
	err    error
	calls  int
}

func (s *doctorRepoStub) GetByID(_ context.Context, _ int64) (*domain.Doctor, error) {
	s.calls++
	return s.doctor, s.err
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
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

var (
	testNow     = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	currentDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	newDate     = time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
)

func testAppointment(t *testing.T) *domain.Appointment {
	t.Helper()
	return &domain.Appointment{
		ID:        10,
		PatientID: 1,
		DoctorID:  2,
		ClinicID:  3,
		Date:      currentDate,
		StartTime: mustTime(t, "09:00"),
		Reason:    "Checkup",
		Status:    domain.StatusScheduled,
	}
}

func testDoctor(t *testing.T) *domain.Doctor {
	t.Helper()
	return &domain.Doctor{
		ID:       2,
		IsActive: true,
		Template: []domain.TemplateSlot{
			{Weekday: currentDate.Weekday(), StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "09:30")},
			{Weekday: newDate.Weekday(), StartTime: mustTime(t, "11:00"), EndTime: mustTime(t, "11:30")},
		},
	}
}

func patient(id int64) domain.Actor {
	return domain.Actor{ID: id, Role: domain.RolePatient}
}

func newTestUseCase(appts *appointmentRepoStub, doctors *doctorRepoStub) *UseCase {
	uc := NewUseCase(appts, doctors, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_MoveToAnotherDay(t *testing.T) {
	appts := &appointmentRepoStub{appointment: testAppointment(t)}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         patient(1),
		Date:          ptr.Ptr(newDate),
		StartTime:     ptr.Ptr(mustTime(t, "11:00")),
	})
	require.NoError(t, err)

	assert.Equal(t, newDate, resp.Appointment.Date)
	assert.True(t, resp.Appointment.StartTime.Equal(mustTime(t, "11:00")))
	assert.Equal(t, "Checkup", resp.Appointment.Reason)

	// Проверка конфликта исключает сам переносимый приём
	require.NotNil(t, appts.gotFilter)
	require.NotNil(t, appts.gotFilter.ExcludeID)
	assert.Equal(t, int64(10), *appts.gotFilter.ExcludeID)
	assert.True(t, appts.gotFilter.OccupiedOnly)
}

func TestExecute_ReasonOnlySkipsSlotChecks(t *testing.T) {
	appts := &appointmentRepoStub{appointment: testAppointment(t)}
	doctors := &doctorRepoStub{doctor: testDoctor(t)}
	uc := newTestUseCase(appts, doctors)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         patient(1),
		Reason:        ptr.Ptr("Follow-up visit"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Follow-up visit", resp.Appointment.Reason)
	assert.Equal(t, currentDate, resp.Appointment.Date)
	// Слот не меняется: ни врач, ни чужие приёмы не запрашиваются
	assert.Zero(t, doctors.calls)
	assert.Nil(t, appts.gotFilter)
}

func TestExecute_NewSlotTaken(t *testing.T) {
	appts := &appointmentRepoStub{
		appointment: testAppointment(t),
		existing: []*domain.Appointment{
			{ID: 11, DoctorID: 2, Date: newDate, StartTime: mustTime(t, "11:00"), Status: domain.StatusScheduled},
		},
	}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         patient(1),
		Date:          ptr.Ptr(newDate),
		StartTime:     ptr.Ptr(mustTime(t, "11:00")),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_UniqueIndexRace(t *testing.T) {
	appts := &appointmentRepoStub{
		appointment: testAppointment(t),
		updateErr:   appointmentRepo.ErrSlotTaken,
	}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         patient(1),
		Date:          ptr.Ptr(newDate),
		StartTime:     ptr.Ptr(mustTime(t, "11:00")),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_NewSlotNotInTemplate(t *testing.T) {
	appts := &appointmentRepoStub{appointment: testAppointment(t)}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         patient(1),
		Date:          ptr.Ptr(newDate),
		StartTime:     ptr.Ptr(mustTime(t, "16:00")),
	})
	assert.ErrorIs(t, err, ErrSlotNotInTemplate)
}

func TestExecute_PastDate(t *testing.T) {
	appts := &appointmentRepoStub{appointment: testAppointment(t)}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         patient(1),
		Date:          ptr.Ptr(testNow.AddDate(0, 0, -1)),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ForeignAppointment(t *testing.T) {
	appts := &appointmentRepoStub{appointment: testAppointment(t)}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         patient(99),
		Reason:        ptr.Ptr("Not mine"),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_DoctorActorForbidden(t *testing.T) {
	appts := &appointmentRepoStub{appointment: testAppointment(t)}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         domain.Actor{ID: 2, Role: domain.RoleDoctor},
		Reason:        ptr.Ptr("Doctor edit"),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_ForbiddenBeforeStatusCheck(t *testing.T) {
	// Чужой завершённый приём: доступ проверяется раньше статуса
	appt := testAppointment(t)
	appt.Status = domain.StatusCompleted
	appts := &appointmentRepoStub{appointment: appt}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         patient(99),
		Reason:        ptr.Ptr("Not mine"),
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestExecute_CancelledAppointment(t *testing.T) {
	appt := testAppointment(t)
	appt.Status = domain.StatusCancelled
	appts := &appointmentRepoStub{appointment: appt}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         patient(1),
		Reason:        ptr.Ptr("Too late"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "Cannot update a cancelled appointment", err.Error())
}

func TestExecute_NotFound(t *testing.T) {
	appts := &appointmentRepoStub{getErr: appointmentRepo.ErrAppointmentNotFound}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		Actor:         patient(1),
		Reason:        ptr.Ptr("Whatever"),
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&appointmentRepoStub{appointment: testAppointment(t)}, &doctorRepoStub{doctor: testDoctor(t)})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero appointment id", &Request{Actor: patient(1), Reason: ptr.Ptr("x")}},
		{"missing actor", &Request{AppointmentID: 10, Reason: ptr.Ptr("x")}},
		{"nothing to update", &Request{AppointmentID: 10, Actor: patient(1)}},
		{"blank reason", &Request{AppointmentID: 10, Actor: patient(1), Reason: ptr.Ptr("  ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
