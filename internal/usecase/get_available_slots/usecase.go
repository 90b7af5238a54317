package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	doctorRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/doctor"
)

// UseCase use case для получения доступных слотов врача на дату
type UseCase struct {
	doctorRepo      DoctorRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctorRepo DoctorRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Чтение идемпотентно и безопасно для конкурентных вызовов:
// никакое состояние при этом не мутируется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s",
		req.DoctorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем врача вместе с недельным шаблоном
	doctor, err := uc.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("GetAvailableSlots: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	if !doctor.IsActive {
		uc.logger.Warn("GetAvailableSlots: doctor id=%d is inactive", req.DoctorID)
		return nil, ErrDoctorNotFound
	}

	// 3. Прошедшие даты не бронируются - возвращаем пустой список
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return &Response{DoctorID: req.DoctorID, Date: req.Date, Slots: []domain.Slot{}}, nil
	}

	// 4. Берем слоты шаблона на день недели даты
	template := doctor.SlotsForWeekday(req.Date.Weekday())
	if len(template) == 0 {
		// Врач не принимает в этот день
		uc.logger.Info("GetAvailableSlots: doctor id=%d has no template for %s",
			req.DoctorID, req.Date.Weekday())
		return &Response{DoctorID: req.DoctorID, Date: req.Date, Slots: []domain.Slot{}}, nil
	}

	// 5. Получаем неотменённые приёмы врача на эту дату
	appointments, err := uc.appointmentRepo.GetByDoctor(ctx, domain.DoctorAppointmentsFilter{
		DoctorID:     req.DoctorID,
		Date:         &req.Date,
		OccupiedOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Вычисляем доступность каждого слота шаблона
	slots := resolveSlots(template, appointments)

	uc.logger.Info("GetAvailableSlots: resolved %d slots for doctor=%d, date=%s",
		len(slots), req.DoctorID, req.Date.Format(domain.DateFormat))

	return &Response{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Slots:    slots,
	}, nil
}
