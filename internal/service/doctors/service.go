package doctors

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	doctorRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/doctor"
	"github.com/abhinavxdd/MediQueue/internal/service/doctors/models"
	"github.com/abhinavxdd/MediQueue/pkg/types"
)

// Service сервис каталога врачей и управления шаблоном доступности
type Service struct {
	doctorRepo DoctorRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса врачей
func NewService(
	doctorRepo DoctorRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		doctorRepo: doctorRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetByID получает врача по ID вместе с недельным шаблоном доступности
func (s *Service) GetByID(ctx context.Context, id int64) (*models.DoctorResponse, error) {
	s.logger.Info("GetByID: fetching doctor id=%d", id)

	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("GetByID: doctor id=%d not found", id)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("GetByID: repository error for doctor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Деактивированные врачи в каталоге не показываются
	if !doctor.IsActive {
		s.logger.Warn("GetByID: doctor id=%d is inactive", id)
		return nil, ErrDoctorNotFound
	}

	s.logger.Info("GetByID: successfully fetched doctor id=%d", id)
	return models.FromDomainDoctor(doctor), nil
}

// List получает список активных врачей с фильтрацией по клинике
// и поиском по имени или специализации
func (s *Service) List(ctx context.Context, req *models.GetDoctorsRequest) (*models.DoctorListResponse, error) {
	s.logger.Info("List: fetching doctors, keyword=%v, clinic=%v", req.Keyword, req.ClinicID)

	filter := domain.DoctorsFilter{
		Keyword:  req.Keyword,
		ClinicID: req.ClinicID,
	}

	doctors, err := s.doctorRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d doctors", len(doctors))
	return models.FromDomainDoctorList(doctors), nil
}

// UpdateTemplate атомарно заменяет недельный шаблон доступности врача.
// Доступно только самому врачу. Уже записанные приёмы замена не трогает:
// они продолжают занимать свои слоты независимо от нового шаблона.
func (s *Service) UpdateTemplate(ctx context.Context, req *models.UpdateTemplateRequest) (*models.DoctorResponse, error) {
	s.logger.Info("UpdateTemplate: updating template for doctor=%d, slots=%d", req.DoctorID, len(req.Slots))

	// Шаблон может менять только сам врач
	if !req.Actor.IsDoctor() || req.Actor.ID != req.DoctorID {
		s.logger.Warn("UpdateTemplate: access denied for %s=%d to doctor=%d template",
			req.Actor.Role, req.Actor.ID, req.DoctorID)
		return nil, ErrAccessDenied
	}

	slots, err := s.buildTemplate(req.Slots)
	if err != nil {
		s.logger.Warn("UpdateTemplate: invalid template for doctor=%d: %v", req.DoctorID, err)
		return nil, err
	}

	// Проверяем существование врача и заменяем шаблон в одной транзакции
	var doctor *domain.Doctor
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		doctor, err = s.doctorRepo.GetByID(ctx, req.DoctorID)
		if err != nil {
			if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
				return ErrDoctorNotFound
			}
			return fmt.Errorf("%w: UpdateTemplate - repository error: %v", ErrInternal, err)
		}

		if err := s.doctorRepo.ReplaceTemplate(ctx, req.DoctorID, slots); err != nil {
			return fmt.Errorf("%w: UpdateTemplate - repository error: %v", ErrInternal, err)
		}

		doctor.Template = slots
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			s.logger.Warn("UpdateTemplate: doctor id=%d not found", req.DoctorID)
			return nil, err
		}
		s.logger.Error("UpdateTemplate: failed to update template for doctor=%d: %v", req.DoctorID, err)
		return nil, err
	}

	s.logger.Info("UpdateTemplate: successfully updated template for doctor=%d", req.DoctorID)
	return models.FromDomainDoctor(doctor), nil
}

// buildTemplate валидирует и конвертирует слоты шаблона из внешнего
// представления. Требования: корректный день недели, времена в формате
// HH:MM, начало раньше конца, без дублей начала в пределах дня.
func (s *Service) buildTemplate(payload []models.TemplateSlotPayload) ([]domain.TemplateSlot, error) {
	slots := make([]domain.TemplateSlot, 0, len(payload))

	// position нумерует слоты в пределах дня в порядке запроса
	positions := make(map[int]int)
	seen := make(map[string]struct{})

	for i, p := range payload {
		weekday, err := models.ToDomainWeekday(p.Weekday)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d: unknown weekday %q", ErrInvalidTemplate, i, p.Weekday)
		}

		startTime, err := types.NewTimeStringFromString(p.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d: invalid start time %q", ErrInvalidTemplate, i, p.StartTime)
		}

		endTime, err := types.NewTimeStringFromString(p.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d: invalid end time %q", ErrInvalidTemplate, i, p.EndTime)
		}

		if !startTime.IsBefore(endTime) {
			return nil, fmt.Errorf("%w: slot %d: start time %s must be before end time %s",
				ErrInvalidTemplate, i, startTime, endTime)
		}

		key := fmt.Sprintf("%d:%s", weekday, startTime)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: slot %d: duplicate start time %s on %s",
				ErrInvalidTemplate, i, startTime, p.Weekday)
		}
		seen[key] = struct{}{}

		slots = append(slots, domain.TemplateSlot{
			Weekday:   weekday,
			StartTime: startTime,
			EndTime:   endTime,
			Position:  positions[int(weekday)],
		})
		positions[int(weekday)]++
	}

	return slots, nil
}
