package clinics

import (
	"context"
	"errors"
	"fmt"

	clinicRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/clinic"
	"github.com/abhinavxdd/MediQueue/internal/service/clinics/models"
)

// Service сервис каталога клиник
type Service struct {
	clinicRepo ClinicRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиник
func NewService(clinicRepo ClinicRepository, logger Logger) *Service {
	return &Service{
		clinicRepo: clinicRepo,
		logger:     logger,
	}
}

// GetByID получает клинику по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ClinicResponse, error) {
	s.logger.Info("GetByID: fetching clinic id=%d", id)

	clinic, err := s.clinicRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrClinicNotFound) {
			s.logger.Warn("GetByID: clinic id=%d not found", id)
			return nil, ErrClinicNotFound
		}
		s.logger.Error("GetByID: repository error for clinic id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched clinic id=%d", id)
	return models.FromDomainClinic(clinic), nil
}

// List получает список клиник, опционально фильтруя по городу.
// Поиск по городу регистронезависимый.
func (s *Service) List(ctx context.Context, city *string) (*models.ClinicListResponse, error) {
	s.logger.Info("List: fetching clinics, city=%v", city)

	clinics, err := s.clinicRepo.List(ctx, city)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d clinics", len(clinics))
	return models.FromDomainClinicList(clinics), nil
}
