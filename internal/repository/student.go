package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shenikar/ojt_tracker/internal/models"
	"github.com/shenikar/ojt_tracker/internal/service"
)

type StudentRepository struct {
	db *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) service.StudentRepository {
	return &StudentRepository{db: db}
}

// GetByID возвращает стажера по UUID
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TrackedSubject, error) {
	query := `
		SELECT id, first_name, last_name, avatar, program, company_id
		FROM students
		WHERE id = $1;
	`
	student := &models.TrackedSubject{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.Avatar,
		&student.Program,
		&student.CompanyID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student by id: %w", err)
	}
	return student, nil
}

// ListByCompany возвращает стажеров, прикрепленных к компании
func (r *StudentRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.TrackedSubject, error) {
	query := `
		SELECT id, first_name, last_name, avatar, program, company_id
		FROM students
		WHERE company_id = $1
		ORDER BY last_name, first_name;
	`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := make([]models.TrackedSubject, 0)
	for rows.Next() {
		var student models.TrackedSubject
		if err := rows.Scan(
			&student.ID,
			&student.FirstName,
			&student.LastName,
			&student.Avatar,
			&student.Program,
			&student.CompanyID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return students, nil
}
