package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/ojt_tracker/internal/models"
	"github.com/shenikar/ojt_tracker/internal/service"
)

type LocationRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	ttl         time.Duration
}

func NewLocationRepository(db *pgxpool.Pool, redisClient *redis.Client, ttl time.Duration) service.LocationRepository {
	return &LocationRepository{
		db:          db,
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// SavePing сохраняет точку в историю перемещений
func (r *LocationRepository) SavePing(ctx context.Context, ping *models.LocationPing) error {
	query := `
		INSERT INTO location_history (student_id, latitude, longitude, recorded_at)
		VALUES ($1, $2, $3, $4) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		ping.StudentID,
		ping.Latitude,
		ping.Longitude,
		ping.RecordedAt,
	).Scan(&ping.ID)
	if err != nil {
		return fmt.Errorf("failed to save location ping: %w", err)
	}
	return nil
}

// SetLatest кладет последнюю точку стажера в Redis
func (r *LocationRepository) SetLatest(ctx context.Context, ping *models.LocationPing) error {
	val, err := json.Marshal(ping.Latest())
	if err != nil {
		return fmt.Errorf("failed to marshal latest location: %w", err)
	}
	if err := r.redisClient.Set(ctx, latestLocationKey(ping.StudentID), val, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set latest location: %w", err)
	}
	return nil
}

// GetLatest читает последние точки одним MGET; отсутствующие ключи пропускаются
func (r *LocationRepository) GetLatest(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID]*models.LatestLocation, error) {
	result := make(map[uuid.UUID]*models.LatestLocation, len(studentIDs))
	if len(studentIDs) == 0 {
		return result, nil
	}

	keys := make([]string, len(studentIDs))
	for i, id := range studentIDs {
		keys[i] = latestLocationKey(id)
	}

	values, err := r.redisClient.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get latest locations: %w", err)
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		loc := &models.LatestLocation{}
		if err := json.Unmarshal([]byte(s), loc); err != nil {
			continue
		}
		result[studentIDs[i]] = loc
	}
	return result, nil
}

// LatestFromHistory берет последнюю точку каждого стажера из истории
func (r *LocationRepository) LatestFromHistory(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID]*models.LatestLocation, error) {
	result := make(map[uuid.UUID]*models.LatestLocation, len(studentIDs))
	if len(studentIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT DISTINCT ON (student_id) student_id, latitude, longitude, recorded_at
		FROM location_history
		WHERE student_id = ANY($1)
		ORDER BY student_id, recorded_at DESC;
	`
	rows, err := r.db.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query location history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  uuid.UUID
			loc models.LatestLocation
		)
		if err := rows.Scan(&id, &loc.Lat, &loc.Lng, &loc.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		result[id] = &loc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return result, nil
}

func latestLocationKey(id uuid.UUID) string {
	return fmt.Sprintf("student:location:%s", id.String())
}
