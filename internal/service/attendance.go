package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
	"github.com/shenikar/ojt_tracker/internal/webhook"
)

//go:generate mockgen -source=attendance.go -destination=mocks/attendance_mock.go -package=mocks

// AttendanceRepository - записи DTR
type AttendanceRepository interface {
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.AttendanceRecord, error)
	// GetByStudentAndDate возвращает (nil, nil), если записи за день нет
	GetByStudentAndDate(ctx context.Context, studentID uuid.UUID, date string) (*models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	UpdateTimeOut(ctx context.Context, record *models.AttendanceRecord) error
}

// AttendanceService - отметки прихода и ухода стажера
type AttendanceService interface {
	MyRecords(ctx context.Context, studentID uuid.UUID) ([]models.AttendanceRecord, error)
	TimeIn(ctx context.Context, studentID uuid.UUID, at *geo.Position) (*models.AttendanceRecord, error)
	TimeOut(ctx context.Context, studentID uuid.UUID, at *geo.Position) (*models.AttendanceRecord, error)
}

type attendanceService struct {
	repo      AttendanceRepository
	students  StudentRepository
	companies CompanyService
	publisher webhook.WebhookPublisher
	clock     clockwork.Clock
	location  *time.Location
	logger    *logrus.Logger
}

func NewAttendanceService(
	repo AttendanceRepository,
	students StudentRepository,
	companies CompanyService,
	publisher webhook.WebhookPublisher,
	clock clockwork.Clock,
	location *time.Location,
	logger *logrus.Logger,
) AttendanceService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &attendanceService{
		repo:      repo,
		students:  students,
		companies: companies,
		publisher: publisher,
		clock:     clock,
		location:  location,
		logger:    logger,
	}
}

// MyRecords возвращает все записи стажера; клиент сам выбирает сегодняшнюю
func (s *attendanceService) MyRecords(ctx context.Context, studentID uuid.UUID) ([]models.AttendanceRecord, error) {
	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":    "attendance",
			"method":     "MyRecords",
			"student_id": studentID,
		}).WithError(err).Error("Failed to list attendance records")
		return nil, fmt.Errorf("service: could not list records: %w", err)
	}
	return records, nil
}

// TimeIn отмечает приход. Точка обязана попасть в безопасную зону компании, если зона задана.
func (s *attendanceService) TimeIn(ctx context.Context, studentID uuid.UUID, at *geo.Position) (*models.AttendanceRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "attendance",
		"method":     "TimeIn",
		"student_id": studentID,
	})

	if at == nil || !at.ToApp().Valid() {
		return nil, ErrInvalidCoordinates
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, s.wrap(log, "could not load student", err)
	}

	now := s.clock.Now()
	today := models.DateOf(now, s.location)

	existing, err := s.repo.GetByStudentAndDate(ctx, studentID, today)
	if err != nil {
		return nil, s.wrap(log, "could not load today's record", err)
	}
	if existing != nil && existing.TimeIn != nil {
		return nil, ErrAlreadyTimedIn
	}

	inside := true
	if student.CompanyID != nil {
		company, err := s.companies.GetCompany(ctx, *student.CompanyID)
		if err != nil {
			return nil, s.wrap(log, "could not load company", err)
		}
		zone := company.Zone()
		inside = zone.Contains(at.ToApp())
		if !inside {
			log.WithField("location", at.ToApp().String()).Warn("Time-in rejected outside safe zone")
			return nil, ErrOutsideZone
		}
	}

	record := &models.AttendanceRecord{
		StudentID:      studentID,
		CompanyID:      student.CompanyID,
		Date:           today,
		TimeIn:         &now,
		TimeInLocation: at,
		InsideZone:     inside,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, s.wrap(log, "could not create record", err)
	}

	log.WithField("record_id", record.ID).Info("Student timed in")
	s.publish(ctx, log, webhook.EventTimeIn, record, at, now)
	return record, nil
}

// TimeOut отмечает уход. Зона не проверяется, координаты необязательны.
func (s *attendanceService) TimeOut(ctx context.Context, studentID uuid.UUID, at *geo.Position) (*models.AttendanceRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "attendance",
		"method":     "TimeOut",
		"student_id": studentID,
	})

	if at != nil && !at.ToApp().Valid() {
		return nil, ErrInvalidCoordinates
	}

	now := s.clock.Now()
	today := models.DateOf(now, s.location)

	record, err := s.repo.GetByStudentAndDate(ctx, studentID, today)
	if err != nil {
		return nil, s.wrap(log, "could not load today's record", err)
	}
	if record == nil || record.TimeIn == nil {
		return nil, ErrNotTimedIn
	}
	if record.TimeOut != nil {
		return nil, ErrAlreadyTimedOut
	}

	record.TimeOut = &now
	record.TimeOutLocation = at
	if err := s.repo.UpdateTimeOut(ctx, record); err != nil {
		return nil, s.wrap(log, "could not update record", err)
	}

	log.WithField("record_id", record.ID).Info("Student timed out")
	s.publish(ctx, log, webhook.EventTimeOut, record, at, now)
	return record, nil
}

// publish - ошибка очереди вебхуков не отменяет отметку
func (s *attendanceService) publish(ctx context.Context, log *logrus.Entry, typ webhook.EventType, record *models.AttendanceRecord, at *geo.Position, now time.Time) {
	if s.publisher == nil {
		return
	}
	event := webhook.WebhookEvent{
		Type:       typ,
		RecordID:   record.ID,
		StudentID:  record.StudentID,
		CompanyID:  record.CompanyID,
		Date:       record.Date,
		InsideZone: record.InsideZone,
		Timestamp:  now,
	}
	if at != nil {
		lat, lng := at.Lat, at.Lng
		event.Latitude, event.Longitude = &lat, &lng
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish attendance webhook event")
	}
}

// wrap оставляет доменные ошибки как есть, остальные логирует и оборачивает
func (s *attendanceService) wrap(log *logrus.Entry, msg string, err error) error {
	if errors.Is(err, ErrStudentNotFound) || errors.Is(err, ErrCompanyNotFound) {
		return err
	}
	log.WithError(err).Error("Attendance operation failed: " + msg)
	return fmt.Errorf("service: %s: %w", msg, err)
}
