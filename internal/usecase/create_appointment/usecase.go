package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	appointmentRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/appointment"
	clinicRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/clinic"
	doctorRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/doctor"
)

// UseCase use case для создания приёма
type UseCase struct {
	appointmentRepo AppointmentRepository
	doctorRepo      DoctorRepository
	clinicRepo      ClinicRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	clinicRepo ClinicRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		clinicRepo:      clinicRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания приёма.
// Проверка занятости слота и вставка выполняются в сериализуемой транзакции
// с блокировкой приёмов врача на дату (FOR UPDATE): из двух конкурентных
// запросов на один слот выигрывает ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, doctor=%d, clinic=%d, date=%s, time=%s",
		req.PatientID, req.DoctorID, req.ClinicID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не должна быть в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем врача вместе с недельным шаблоном
	doctor, err := uc.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("CreateAppointment: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	if !doctor.IsActive {
		uc.logger.Warn("CreateAppointment: doctor id=%d is inactive", req.DoctorID)
		return nil, ErrDoctorNotFound
	}

	// 5. Получаем клинику
	clinic, err := uc.clinicRepo.GetByID(ctx, req.ClinicID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrClinicNotFound) {
			uc.logger.Warn("CreateAppointment: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	// 6. Время должно совпадать со слотом шаблона на этот день недели
	if !doctor.HasSlot(req.Date.Weekday(), req.StartTime) {
		uc.logger.Warn("CreateAppointment: slot %s is not in doctor id=%d template for %s",
			req.StartTime, req.DoctorID, req.Date.Weekday())
		return nil, ErrSlotNotInTemplate
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 7. Проверка занятости и вставка - атомарно, в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем неотменённые приёмы врача на дату с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByDoctor(txCtx, domain.DoctorAppointmentsFilter{
			DoctorID:     req.DoctorID,
			Date:         &req.Date,
			OccupiedOnly: true,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 7.2. Повторная проверка на момент коммита: слот должен быть свободен
		for _, appt := range appointments {
			if appt.StartTime.Equal(req.StartTime) {
				uc.logger.Warn("CreateAppointment: slot %s on %s already taken by appointment id=%d",
					req.StartTime, req.Date.Format(domain.DateFormat), appt.ID)
				return ErrSlotNotAvailable
			}
		}

		// 7.3. Создаем приём с денормализацией данных врача и клиники
		appointment := &domain.Appointment{
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
			ClinicID:  req.ClinicID,
			Date:      req.Date,
			StartTime: req.StartTime,
			Reason:    req.Reason,
			Status:    domain.StatusScheduled,
			// Денормализация для отображения без дополнительных запросов
			DoctorName:           doctor.Name,
			DoctorSpecialization: doctor.Specialization,
			ClinicName:           clinic.Name,
			ClinicAddress:        clinic.Address,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			// Частичный уникальный индекс - страховка на уровне БД
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: unique index rejected slot %s on %s",
					req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{Appointment: result}, nil
}
