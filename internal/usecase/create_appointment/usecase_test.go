package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	appointmentRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/appointment"
	clinicRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/clinic"
	doctorRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/doctor"
	"github.com/abhinavxdd/MediQueue/pkg/types"
)

type appointmentRepoStub struct {
	existing  []*domain.Appointment
	createErr error
	created   *domain.Appointment
}

func (s *appointmentRepoStub) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *appt
	created.ID = 42
	s.created = &created
	return &created, nil
}

func (s *appointmentRepoStub) GetByDoctor(_ context.Context, _ domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	return s.existing, nil
}

type doctorRepoStub struct {
	doctor *domain.Doctor
	err    error
}

func (s *doctorRepoStub) GetByID(_ context.Context, _ int64) (*domain.Doctor, error) {
	return s.doctor, s.err
}

type clinicRepoStub struct {
	clinic *domain.Clinic
	err    error
}

func (s *clinicRepoStub) GetByID(_ context.Context, _ int64) (*domain.Clinic, error) {
	return s.clinic, s.err
}

// passthroughTxManager выполняет функцию без реальной транзакции
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
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
	testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func testDoctor(t *testing.T) *domain.Doctor {
	t.Helper()
	return &domain.Doctor{
		ID:             2,
		Name:           "Dr. Sharma",
		Specialization: "Cardiology",
		IsActive:       true,
		Template: []domain.TemplateSlot{
			{Weekday: testDate.Weekday(), StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "09:30")},
			{Weekday: testDate.Weekday(), StartTime: mustTime(t, "09:30"), EndTime: mustTime(t, "10:00")},
		},
	}
}

func testClinic() *domain.Clinic {
	return &domain.Clinic{ID: 3, Name: "City Care", Address: "12 MG Road", City: "Bengaluru"}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		PatientID: 1,
		DoctorID:  2,
		ClinicID:  3,
		Date:      testDate,
		StartTime: mustTime(t, "09:00"),
		Reason:    "Chest pain",
	}
}

func newTestUseCase(appts *appointmentRepoStub, doctors *doctorRepoStub, clinics *clinicRepoStub, tx *passthroughTxManager) *UseCase {
	uc := NewUseCase(appts, doctors, clinics, tx, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	appts := &appointmentRepoStub{}
	tx := &passthroughTxManager{}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)}, &clinicRepoStub{clinic: testClinic()}, tx)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	require.NotNil(t, resp.Appointment)
	assert.Equal(t, int64(42), resp.Appointment.ID)
	assert.Equal(t, domain.StatusScheduled, resp.Appointment.Status)
	assert.Equal(t, 1, tx.calls)

	// Данные врача и клиники денормализуются в приём
	assert.Equal(t, "Dr. Sharma", resp.Appointment.DoctorName)
	assert.Equal(t, "Cardiology", resp.Appointment.DoctorSpecialization)
	assert.Equal(t, "City Care", resp.Appointment.ClinicName)
	assert.Equal(t, "12 MG Road", resp.Appointment.ClinicAddress)
}

func TestExecute_SlotAlreadyTaken(t *testing.T) {
	appts := &appointmentRepoStub{
		existing: []*domain.Appointment{
			{ID: 7, DoctorID: 2, Date: testDate, StartTime: mustTime(t, "09:00"), Status: domain.StatusScheduled},
		},
	}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)}, &clinicRepoStub{clinic: testClinic()}, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, appts.created)
}

func TestExecute_UniqueIndexRace(t *testing.T) {
	// Конкурент успел вставить приём между проверкой и вставкой:
	// нарушение уникального индекса отдается как конфликт слота
	appts := &appointmentRepoStub{createErr: appointmentRepo.ErrSlotTaken}
	uc := newTestUseCase(appts, &doctorRepoStub{doctor: testDoctor(t)}, &clinicRepoStub{clinic: testClinic()}, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SlotNotInTemplate(t *testing.T) {
	uc := newTestUseCase(&appointmentRepoStub{}, &doctorRepoStub{doctor: testDoctor(t)}, &clinicRepoStub{clinic: testClinic()}, &passthroughTxManager{})

	req := validRequest(t)
	req.StartTime = mustTime(t, "15:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotInTemplate)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&appointmentRepoStub{}, &doctorRepoStub{doctor: testDoctor(t)}, &clinicRepoStub{clinic: testClinic()}, &passthroughTxManager{})

	req := validRequest(t)
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	uc := newTestUseCase(&appointmentRepoStub{}, &doctorRepoStub{err: doctorRepo.ErrDoctorNotFound}, &clinicRepoStub{clinic: testClinic()}, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_InactiveDoctor(t *testing.T) {
	doctor := testDoctor(t)
	doctor.IsActive = false
	uc := newTestUseCase(&appointmentRepoStub{}, &doctorRepoStub{doctor: doctor}, &clinicRepoStub{clinic: testClinic()}, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_ClinicNotFound(t *testing.T) {
	uc := newTestUseCase(&appointmentRepoStub{}, &doctorRepoStub{doctor: testDoctor(t)}, &clinicRepoStub{err: clinicRepo.ErrClinicNotFound}, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrClinicNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&appointmentRepoStub{}, &doctorRepoStub{doctor: testDoctor(t)}, &clinicRepoStub{clinic: testClinic()}, &passthroughTxManager{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero patient", func(r *Request) { r.PatientID = 0 }},
		{"zero doctor", func(r *Request) { r.DoctorID = 0 }},
		{"zero clinic", func(r *Request) { r.ClinicID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"blank reason", func(r *Request) { r.Reason = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// slotStore имитирует таблицу приёмов с частичным уникальным индексом
// по (doctor, date, start_time). barrier задерживает оба конкурентных
// запроса после проверки занятости, до вставки - худший случай гонки.
type slotStore struct {
	mu      sync.Mutex
	taken   map[string]bool
	barrier *sync.WaitGroup
}

func newSlotStore(barrier *sync.WaitGroup) *slotStore {
	return &slotStore{taken: make(map[string]bool), barrier: barrier}
}

func slotKey(doctorID int64, date time.Time, startTime types.TimeString) string {
	return fmt.Sprintf("%d:%s:%s", doctorID, date.Format("2006-01-02"), startTime)
}

func (s *slotStore) GetByDoctor(_ context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	s.mu.Lock()
	occupied := len(s.taken) > 0
	s.mu.Unlock()

	// Оба запроса видят слот свободным и лишь затем идут на вставку
	if s.barrier != nil {
		s.barrier.Done()
		s.barrier.Wait()
	}

	if !occupied {
		return nil, nil
	}
	return []*domain.Appointment{
		{ID: 1, DoctorID: filter.DoctorID, Status: domain.StatusScheduled},
	}, nil
}

func (s *slotStore) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slotKey(appt.DoctorID, appt.Date, appt.StartTime)
	if s.taken[key] {
		return nil, appointmentRepo.ErrSlotTaken
	}
	s.taken[key] = true

	created := *appt
	created.ID = int64(len(s.taken))
	return &created, nil
}

func TestExecute_ConcurrentRequestsSingleWinner(t *testing.T) {
	// Два пациента одновременно бронируют один слот: оба проходят
	// проверку занятости до того, как кто-либо вставил строку, и только
	// уникальный индекс решает, кто выиграл
	var barrier sync.WaitGroup
	barrier.Add(2)

	store := newSlotStore(&barrier)
	doctors := &doctorRepoStub{doctor: testDoctor(t)}
	clinics := &clinicRepoStub{clinic: testClinic()}

	results := make(chan error, 2)
	for _, patientID := range []int64{1, 5} {
		go func(pid int64) {
			uc := newTestUseCase(nil, doctors, clinics, &passthroughTxManager{})
			uc.appointmentRepo = store

			req := validRequest(t)
			req.PatientID = pid
			_, err := uc.Execute(context.Background(), req)
			results <- err
		}(patientID)
	}

	var succeeded, conflicted int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotNotAvailable):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
}
