package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
	"github.com/shenikar/ojt_tracker/internal/service"
)

const recordColumns = `
	id, student_id, company_id, work_date::text,
	time_in, time_out,
	time_in_lng, time_in_lat, time_out_lng, time_out_lat,
	inside_zone, created_at, updated_at`

type AttendanceRepository struct {
	db *pgxpool.Pool
}

func NewAttendanceRepository(db *pgxpool.Pool) service.AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListByStudent возвращает записи DTR стажера, новые сверху
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.AttendanceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM dtr_records WHERE student_id = $1 ORDER BY work_date DESC;`
	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dtr records: %w", err)
	}
	defer rows.Close()

	records := make([]models.AttendanceRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dtr row: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return records, nil
}

// GetByStudentAndDate возвращает запись за день или (nil, nil)
func (r *AttendanceRepository) GetByStudentAndDate(ctx context.Context, studentID uuid.UUID, date string) (*models.AttendanceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM dtr_records WHERE student_id = $1 AND work_date = $2::text::date;`
	record, err := scanRecord(r.db.QueryRow(ctx, query, studentID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dtr record: %w", err)
	}
	return record, nil
}

// Create записывает приход. Пустая запись за тот же день перезаписывается.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	lng, lat := positionArgs(record.TimeInLocation)
	query := `
		INSERT INTO dtr_records (student_id, company_id, work_date, time_in, time_in_lng, time_in_lat, inside_zone)
		VALUES ($1, $2, $3::text::date, $4, $5, $6, $7)
		ON CONFLICT (student_id, work_date) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			time_in = EXCLUDED.time_in,
			time_in_lng = EXCLUDED.time_in_lng,
			time_in_lat = EXCLUDED.time_in_lat,
			inside_zone = EXCLUDED.inside_zone,
			updated_at = NOW()
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		record.StudentID,
		record.CompanyID,
		record.Date,
		record.TimeIn,
		lng,
		lat,
		record.InsideZone,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create dtr record: %w", err)
	}
	return nil
}

// UpdateTimeOut записывает уход в существующую запись
func (r *AttendanceRepository) UpdateTimeOut(ctx context.Context, record *models.AttendanceRecord) error {
	lng, lat := positionArgs(record.TimeOutLocation)
	query := `
		UPDATE dtr_records SET
			time_out = $1,
			time_out_lng = $2,
			time_out_lat = $3,
			updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at;
	`
	err := r.db.QueryRow(ctx, query, record.TimeOut, lng, lat, record.ID).Scan(&record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("dtr record with id %s not found for update", record.ID)
		}
		return fmt.Errorf("failed to update dtr record: %w", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (*models.AttendanceRecord, error) {
	var (
		record         models.AttendanceRecord
		inLng, inLat   *float64
		outLng, outLat *float64
	)
	err := row.Scan(
		&record.ID,
		&record.StudentID,
		&record.CompanyID,
		&record.Date,
		&record.TimeIn,
		&record.TimeOut,
		&inLng,
		&inLat,
		&outLng,
		&outLat,
		&record.InsideZone,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.TimeInLocation = positionFrom(inLng, inLat)
	record.TimeOutLocation = positionFrom(outLng, outLat)
	return &record, nil
}

// positionArgs раскладывает необязательную точку на NULL-совместимые аргументы
func positionArgs(p *geo.Position) (lng, lat *float64) {
	if p == nil {
		return nil, nil
	}
	lngV, latV := p.Lng, p.Lat
	return &lngV, &latV
}

func positionFrom(lng, lat *float64) *geo.Position {
	if lng == nil || lat == nil {
		return nil
	}
	return &geo.Position{Lng: *lng, Lat: *lat}
}
