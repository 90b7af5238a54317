package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	apptRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/appointment"
	"github.com/abhinavxdd/MediQueue/internal/service/appointments/models"
)

// Service сервис для работы с приёмами: просмотр истории и жизненный цикл
type Service struct {
	apptRepo  AppointmentRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:  apptRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetByID получает приём по ID
// Проверяет права доступа - приём видят только пациент-владелец
// и назначенный врач
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for %s=%d", id, actor.Role, actor.ID)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkAccess(appt, actor); err != nil {
		s.logger.Warn("GetByID: access denied for %s=%d to appointment id=%d", actor.Role, actor.ID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetPatientAppointments получает историю приёмов пациента
// Опционально фильтрует по статусу. Пациент видит только свою историю.
func (s *Service) GetPatientAppointments(ctx context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetPatientAppointments: fetching appointments for patient=%d, status=%v", req.PatientID, req.Status)

	// История пациента доступна только ему самому
	if !req.Actor.IsPatient() || req.Actor.ID != req.PatientID {
		s.logger.Warn("GetPatientAppointments: access denied for %s=%d to patient=%d history",
			req.Actor.Role, req.Actor.ID, req.PatientID)
		return nil, ErrAccessDenied
	}

	filter := domain.PatientAppointmentsFilter{PatientID: req.PatientID}

	// Конвертируем статус из строки в domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPatientAppointments: invalid status=%s for patient=%d", *req.Status, req.PatientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.apptRepo.GetByPatient(ctx, filter)
	if err != nil {
		s.logger.Error("GetPatientAppointments: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientAppointments: successfully fetched %d appointments for patient=%d",
		len(appointments), req.PatientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetDoctorAppointments получает приёмы врача с фильтрацией по статусу и дате
// Доступно только самому врачу
func (s *Service) GetDoctorAppointments(ctx context.Context, req *models.GetDoctorAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetDoctorAppointments: fetching appointments for doctor=%d, status=%v, date=%v",
		req.DoctorID, req.Status, req.Date)

	// Расписание врача доступно только ему самому
	if !req.Actor.IsDoctor() || req.Actor.ID != req.DoctorID {
		s.logger.Warn("GetDoctorAppointments: access denied for %s=%d to doctor=%d schedule",
			req.Actor.Role, req.Actor.ID, req.DoctorID)
		return nil, ErrAccessDenied
	}

	filter := domain.DoctorAppointmentsFilter{
		DoctorID: req.DoctorID,
		Date:     req.Date,
	}

	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetDoctorAppointments: invalid status=%s for doctor=%d", *req.Status, req.DoctorID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.apptRepo.GetByDoctor(ctx, filter)
	if err != nil {
		s.logger.Error("GetDoctorAppointments: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDoctorAppointments: successfully fetched %d appointments for doctor=%d",
		len(appointments), req.DoctorID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет приём и возвращает его обновленное состояние
// (со статусом, стороной и причиной отмены).
// Пациент может отменить только свой приём (cancelled_by=patient),
// врач - только назначенный ему приём (cancelled_by=doctor).
// Проверка доступа выполняется до проверки статуса: чужой приём
// возвращает ErrAccessDenied независимо от его состояния.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by %s=%d", appointmentID, req.Actor.Role, req.Actor.ID)

	reason := req.Reason
	if reason == "" {
		reason = domain.DefaultCancelReason
	}
	if len(reason) > domain.MaxCancelReasonLength {
		s.logger.Warn("Cancel: cancel reason too long for appointment id=%d", appointmentID)
		return nil, fmt.Errorf("%w: cancel reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	var cancelled *domain.Appointment

	// Читаем и изменяем приём в одной транзакции, чтобы статус
	// не успел измениться между проверкой и отменой
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		appt, err := s.apptRepo.GetByID(ctx, appointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Сначала права доступа, затем статус
		if err := s.checkAccess(appt, req.Actor); err != nil {
			return err
		}

		if !appt.IsScheduled() {
			return &domain.InvalidTransitionError{Action: "cancel", Status: appt.Status}
		}

		// Определяем, какая сторона отменяет
		cancelledBy := domain.CancelledByPatient
		if req.Actor.IsDoctor() {
			cancelledBy = domain.CancelledByDoctor
		}

		if err := s.apptRepo.Cancel(ctx, appointmentID, cancelledBy, reason); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Перечитываем в той же транзакции - клиенту возвращается
		// приём с заполненными cancelled_by/cancel_reason/cancelled_at
		cancelled, err = s.apptRepo.GetByID(ctx, appointmentID)
		if err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrAccessDenied) {
			s.logger.Warn("Cancel: appointment id=%d: %v", appointmentID, err)
			return nil, err
		}
		if errors.Is(err, domain.ErrInvalidTransition) {
			s.logger.Warn("Cancel: appointment id=%d: %v", appointmentID, err)
			return nil, err
		}
		s.logger.Error("Cancel: failed to cancel appointment id=%d: %v", appointmentID, err)
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d by %s=%d",
		appointmentID, req.Actor.Role, req.Actor.ID)
	return models.FromDomainAppointment(cancelled), nil
}

// Complete завершает приём с медицинскими заметками и возвращает
// его обновленное состояние. Доступно только назначенному врачу.
// Завершить можно только запланированный приём.
func (s *Service) Complete(ctx context.Context, appointmentID int64, req *models.CompleteAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%d by %s=%d", appointmentID, req.Actor.Role, req.Actor.ID)

	if len(req.Notes) > domain.MaxNotesLength {
		s.logger.Warn("Complete: notes too long for appointment id=%d", appointmentID)
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	var completed *domain.Appointment

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		appt, err := s.apptRepo.GetByID(ctx, appointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}

		// Завершать приём может только назначенный врач
		if !req.Actor.IsDoctor() || appt.DoctorID != req.Actor.ID {
			return ErrAccessDenied
		}

		if !appt.IsScheduled() {
			return &domain.InvalidTransitionError{Action: "complete", Status: appt.Status}
		}

		if err := s.apptRepo.Complete(ctx, appointmentID, req.Notes); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}

		// Перечитываем в той же транзакции - клиенту возвращается
		// завершенный приём с заметками врача
		completed, err = s.apptRepo.GetByID(ctx, appointmentID)
		if err != nil {
			return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrAccessDenied) ||
			errors.Is(err, domain.ErrInvalidTransition) {
			s.logger.Warn("Complete: appointment id=%d: %v", appointmentID, err)
			return nil, err
		}
		s.logger.Error("Complete: failed to complete appointment id=%d: %v", appointmentID, err)
		return nil, err
	}

	s.logger.Info("Complete: successfully completed appointment id=%d by doctor=%d", appointmentID, req.Actor.ID)
	return models.FromDomainAppointment(completed), nil
}

// Вспомогательные методы

// checkAccess проверяет, что актор имеет доступ к приёму.
// Доступ есть у пациента-владельца и у назначенного врача.
func (s *Service) checkAccess(appt *domain.Appointment, actor domain.Actor) error {
	if actor.IsPatient() && appt.PatientID == actor.ID {
		return nil
	}
	if actor.IsDoctor() && appt.DoctorID == actor.ID {
		return nil
	}
	return ErrAccessDenied
}
