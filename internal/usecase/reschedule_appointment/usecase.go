package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	appointmentRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/appointment"
	doctorRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/doctor"
)

// UseCase use case для изменения запланированного приёма пациентом.
// Перенос на другой слот повторяет проверку конфликта из сценария создания,
// исключая сам переносимый приём.
type UseCase struct {
	appointmentRepo AppointmentRepository
	doctorRepo      DoctorRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case изменения приёма
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, actor=%d/%s",
		req.AppointmentID, req.Actor.ID, req.Actor.Role)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 2. Всё под сериализуемой транзакцией: чтение приёма, проверка
	// конфликта по новому слоту и запись должны быть атомарны
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.1. Авторизация строго до проверки статуса: изменять приём
		// может только пациент-владелец
		if !req.Actor.IsPatient() || appt.PatientID != req.Actor.ID {
			uc.logger.Warn("RescheduleAppointment: actor %d/%s is not the owning patient of appointment id=%d",
				req.Actor.ID, req.Actor.Role, req.AppointmentID)
			return ErrForbidden
		}

		// 2.2. Изменять можно только запланированный приём
		if !appt.IsScheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s", req.AppointmentID, appt.Status)
			return &domain.InvalidTransitionError{Action: "update", Status: appt.Status}
		}

		// 2.3. Собираем новое расписание, не переданные поля остаются прежними
		newDate := appt.Date
		if req.Date != nil {
			newDate = *req.Date
		}
		newStartTime := appt.StartTime
		if req.StartTime != nil {
			newStartTime = *req.StartTime
		}
		newReason := appt.Reason
		if req.Reason != nil {
			newReason = *req.Reason
		}

		slotChanged := !isSameDay(newDate, appt.Date) || !newStartTime.Equal(appt.StartTime)

		// 2.4. При смене слота - полный набор проверок бронирования,
		// исключая сам переносимый приём
		if slotChanged {
			if err := validateDate(newDate, now); err != nil {
				uc.logger.Warn("RescheduleAppointment: date validation failed: %v", err)
				return err
			}

			doctor, err := uc.doctorRepo.GetByID(txCtx, appt.DoctorID)
			if err != nil {
				if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
					uc.logger.Error("RescheduleAppointment: doctor id=%d of appointment id=%d missing",
						appt.DoctorID, req.AppointmentID)
					return fmt.Errorf("%w: doctor is missing: %v", ErrInternal, err)
				}
				uc.logger.Error("RescheduleAppointment: failed to get doctor id=%d: %v", appt.DoctorID, err)
				return fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
			}

			if !doctor.HasSlot(newDate.Weekday(), newStartTime) {
				uc.logger.Warn("RescheduleAppointment: slot %s is not in doctor id=%d template for %s",
					newStartTime, appt.DoctorID, newDate.Weekday())
				return ErrSlotNotInTemplate
			}

			appointments, err := uc.appointmentRepo.GetByDoctor(txCtx, domain.DoctorAppointmentsFilter{
				DoctorID:     appt.DoctorID,
				Date:         &newDate,
				ExcludeID:    &appt.ID,
				OccupiedOnly: true,
			})
			if err != nil {
				uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
				return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
			}

			for _, other := range appointments {
				if other.StartTime.Equal(newStartTime) {
					uc.logger.Warn("RescheduleAppointment: slot %s on %s already taken by appointment id=%d",
						newStartTime, newDate.Format(domain.DateFormat), other.ID)
					return ErrSlotNotAvailable
				}
			}
		}

		appt.Date = newDate
		appt.StartTime = newStartTime
		appt.Reason = newReason

		if err := uc.appointmentRepo.UpdateSchedule(txCtx, appt.ID, appt); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleAppointment: unique index rejected slot %s on %s",
					newStartTime, newDate.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully updated appointment id=%d", result.ID)

	return &Response{Appointment: result}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.Actor.ID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.Date == nil && req.StartTime == nil && req.Reason == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.Reason != nil {
		if strings.TrimSpace(*req.Reason) == "" {
			return fmt.Errorf("%w: reason must not be empty", ErrInvalidInput)
		}
		if len(*req.Reason) > domain.MaxReasonLength {
			return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
		}
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
