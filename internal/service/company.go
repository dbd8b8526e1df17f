package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
)

//go:generate mockgen -source=company.go -destination=mocks/company_mock.go -package=mocks

// CompanyRepository определяет контракт хранилища компаний (Postgres + кеш Redis)
type CompanyRepository interface {
	List(ctx context.Context) ([]models.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateSafeZone(ctx context.Context, id uuid.UUID, zone *geo.Geometry, label string) (*models.Company, error)
	GetCompanyFromCache(ctx context.Context, id uuid.UUID) (*models.Company, error)
	SetCompanyCache(ctx context.Context, company *models.Company) error
	InvalidateCompanyCache(ctx context.Context, id uuid.UUID) error
}

// StudentRepository определяет контракт хранилища стажеров
type StudentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.TrackedSubject, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.TrackedSubject, error)
}

// CompanyService - компании, их безопасные зоны и стажеры для живой карты
type CompanyService interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateSafeZone(ctx context.Context, id uuid.UUID, zone *geo.Geometry, label string) (*models.Company, error)
	ListCompanyStudents(ctx context.Context, id uuid.UUID) ([]models.TrackedSubject, error)
}

type companyService struct {
	repo      CompanyRepository
	students  StudentRepository
	locations LocationRepository
	logger    *logrus.Logger
}

func NewCompanyService(repo CompanyRepository, students StudentRepository, locations LocationRepository, logger *logrus.Logger) CompanyService {
	return &companyService{
		repo:      repo,
		students:  students,
		locations: locations,
		logger:    logger,
	}
}

// ListCompanies возвращает все компании
func (s *companyService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "company",
		"method":  "ListCompanies",
	})

	companies, err := s.repo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list companies from repository")
		return nil, fmt.Errorf("service: could not list companies: %w", err)
	}

	log.WithField("count", len(companies)).Debug("Companies listed successfully")
	return companies, nil
}

// GetCompany получает компанию сначала из кеша, затем из БД
func (s *companyService) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "company",
		"method":     "GetCompany",
		"company_id": id,
	})

	cached, err := s.repo.GetCompanyFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read company from cache")
	}
	if cached != nil {
		log.Debug("Company served from cache")
		return cached, nil
	}

	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to get company in repository")
		return nil, fmt.Errorf("service: could not get company: %w", err)
	}

	if err := s.repo.SetCompanyCache(ctx, company); err != nil {
		log.WithError(err).Warn("Failed to cache company")
	}
	return company, nil
}

// UpdateSafeZone заменяет безопасную зону компании; nil снимает ограничение
func (s *companyService) UpdateSafeZone(ctx context.Context, id uuid.UUID, zone *geo.Geometry, label string) (*models.Company, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "company",
		"method":     "UpdateSafeZone",
		"company_id": id,
	})
	log.Info("Attempting to update safe zone")

	if zone != nil {
		if err := zone.Validate(); err != nil {
			log.WithError(err).Warn("Rejected invalid safe zone")
			return nil, fmt.Errorf("%w: %v", ErrInvalidSafeZone, err)
		}
	}

	company, err := s.repo.UpdateSafeZone(ctx, id, zone, label)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to update safe zone in repository")
		return nil, fmt.Errorf("service: could not update safe zone: %w", err)
	}

	if err := s.repo.InvalidateCompanyCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate company cache")
	}

	log.WithField("restricted", company.Zone().Restricts()).Info("Safe zone updated successfully")
	return company, nil
}

// ListCompanyStudents возвращает стажеров компании с последними известными координатами.
// Точки берутся из Redis, недостающие - из истории в Postgres.
func (s *companyService) ListCompanyStudents(ctx context.Context, id uuid.UUID) ([]models.TrackedSubject, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "company",
		"method":     "ListCompanyStudents",
		"company_id": id,
	})

	var students []models.TrackedSubject
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.GetCompany(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		students, err = s.students.ListByCompany(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to list company students")
		return nil, fmt.Errorf("service: could not list company students: %w", err)
	}
	if len(students) == 0 {
		return []models.TrackedSubject{}, nil
	}

	ids := make([]uuid.UUID, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}

	latest, err := s.locations.GetLatest(ctx, ids)
	if err != nil {
		log.WithError(err).Warn("Failed to read latest locations from cache")
		latest = map[uuid.UUID]*models.LatestLocation{}
	}

	var missing []uuid.UUID
	for _, studentID := range ids {
		if latest[studentID] == nil {
			missing = append(missing, studentID)
		}
	}
	if len(missing) > 0 {
		history, err := s.locations.LatestFromHistory(ctx, missing)
		if err != nil {
			log.WithError(err).Warn("Failed to read latest locations from history")
		}
		for studentID, loc := range history {
			latest[studentID] = loc
		}
	}

	for i := range students {
		students[i].LatestLocation = latest[students[i].ID]
	}
	log.WithFields(logrus.Fields{
		"count":   len(students),
		"located": len(latest),
	}).Debug("Company students listed")
	return students, nil
}
