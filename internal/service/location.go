package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
)

//go:generate mockgen -source=location.go -destination=mocks/location_mock.go -package=mocks

// LocationRepository - история точек в Postgres и последняя точка в Redis
type LocationRepository interface {
	SavePing(ctx context.Context, ping *models.LocationPing) error
	SetLatest(ctx context.Context, ping *models.LocationPing) error
	GetLatest(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID]*models.LatestLocation, error)
	LatestFromHistory(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID]*models.LatestLocation, error)
}

// LocationService принимает периодические точки от стажеров
type LocationService interface {
	RecordLocation(ctx context.Context, studentID uuid.UUID, at geo.AppCoordinate) (*models.LocationPing, error)
}

type locationService struct {
	repo   LocationRepository
	clock  clockwork.Clock
	logger *logrus.Logger
}

func NewLocationService(repo LocationRepository, clock clockwork.Clock, logger *logrus.Logger) LocationService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &locationService{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

// RecordLocation сохраняет точку в историю и обновляет последнюю точку для живой карты
func (s *locationService) RecordLocation(ctx context.Context, studentID uuid.UUID, at geo.AppCoordinate) (*models.LocationPing, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "location",
		"method":     "RecordLocation",
		"student_id": studentID,
	})

	if !at.Valid() {
		return nil, ErrInvalidCoordinates
	}

	ping := &models.LocationPing{
		StudentID:  studentID,
		Latitude:   at.Lat,
		Longitude:  at.Lng,
		RecordedAt: s.clock.Now(),
	}
	if err := s.repo.SavePing(ctx, ping); err != nil {
		log.WithError(err).Error("Failed to save location ping")
		return nil, fmt.Errorf("service: could not record location: %w", err)
	}

	if err := s.repo.SetLatest(ctx, ping); err != nil {
		log.WithError(err).Warn("Failed to cache latest location")
	}

	log.WithField("location", at.String()).Debug("Location recorded")
	return ping, nil
}
