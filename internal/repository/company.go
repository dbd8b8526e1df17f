package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
	"github.com/shenikar/ojt_tracker/internal/service"
)

const companyColumns = `id, name, address, safe_zone, safe_zone_label, created_at, updated_at`

type CompanyRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewCompanyRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.CompanyRepository {
	return &CompanyRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// List возвращает все компании по имени
func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]models.Company, 0)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, *company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return companies, nil
}

// GetByID возвращает компанию по UUID
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1;`
	company, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company by id: %w", err)
	}
	return company, nil
}

// UpdateSafeZone записывает геометрию зоны в JSONB; nil очищает зону
func (r *CompanyRepository) UpdateSafeZone(ctx context.Context, id uuid.UUID, zone *geo.Geometry, label string) (*models.Company, error) {
	var raw []byte
	if zone != nil {
		var err error
		if raw, err = json.Marshal(zone); err != nil {
			return nil, fmt.Errorf("failed to marshal safe zone: %w", err)
		}
	}

	query := `
		UPDATE companies SET
			safe_zone = $1,
			safe_zone_label = $2,
			updated_at = NOW()
		WHERE id = $3
		RETURNING ` + companyColumns + `;
	`
	company, err := scanCompany(r.db.QueryRow(ctx, query, raw, label, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to update safe zone: %w", err)
	}
	return company, nil
}

// GetCompanyFromCache пытается получить компанию из Redis
func (r *CompanyRepository) GetCompanyFromCache(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	val, err := r.redisClient.Get(ctx, companyCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company from cache: %w", err)
	}

	company := &models.Company{}
	if err := json.Unmarshal(val, company); err != nil {
		return nil, fmt.Errorf("failed to unmarshal company from cache: %w", err)
	}
	return company, nil
}

// SetCompanyCache сохраняет компанию в Redis
func (r *CompanyRepository) SetCompanyCache(ctx context.Context, company *models.Company) error {
	val, err := json.Marshal(company)
	if err != nil {
		return fmt.Errorf("failed to marshal company for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, companyCacheKey(company.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set company in cache: %w", err)
	}
	return nil
}

// InvalidateCompanyCache удаляет компанию из кеша Redis
func (r *CompanyRepository) InvalidateCompanyCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, companyCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate company cache: %w", err)
	}
	return nil
}

func companyCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("company:%s", id.String())
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	var (
		company models.Company
		zone    []byte
	)
	err := row.Scan(
		&company.ID,
		&company.Name,
		&company.Address,
		&zone,
		&company.SafeZoneLabel,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	company.SafeZone, err = decodeSafeZone(zone)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// decodeSafeZone разбирает JSONB зоны; NULL означает отсутствие зоны
func decodeSafeZone(raw []byte) (*geo.Geometry, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var zone geo.Geometry
	if err := json.Unmarshal(raw, &zone); err != nil {
		return nil, fmt.Errorf("failed to decode safe zone: %w", err)
	}
	return &zone, nil
}
