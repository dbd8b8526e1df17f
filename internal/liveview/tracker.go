package liveview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/models"
)

// Tracker - живая карта по нескольким стажерам с выбором компании
type Tracker struct {
	viewer  *Viewer
	fetcher Fetcher
	logger  *logrus.Logger

	mu        sync.Mutex
	companies []models.Company
	selected  uuid.UUID
}

func NewTracker(viewer *Viewer, fetcher Fetcher, logger *logrus.Logger) *Tracker {
	return &Tracker{viewer: viewer, fetcher: fetcher, logger: logger}
}

// Load загружает список компаний и, если ничего не выбрано, выбирает первую
func (t *Tracker) Load(ctx context.Context) error {
	companies, err := t.fetcher.Companies(ctx)
	if err != nil {
		t.logger.WithField("component", "tracker").WithError(err).Error("Failed to list companies")
		return fmt.Errorf("tracker: could not list companies: %w", err)
	}

	t.mu.Lock()
	t.companies = companies
	needSelect := t.selected == uuid.Nil && len(companies) > 0
	t.mu.Unlock()

	if needSelect {
		t.Select(ctx, companies[0].ID)
	}
	return nil
}

// Select переключает живую карту на другую компанию
func (t *Tracker) Select(ctx context.Context, id uuid.UUID) {
	t.mu.Lock()
	t.selected = id
	t.mu.Unlock()
	t.viewer.Switch(ctx, id)
}

func (t *Tracker) Selected() uuid.UUID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

func (t *Tracker) Companies() []models.Company {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.Company(nil), t.companies...)
}

func (t *Tracker) Refresh(ctx context.Context) error {
	return t.viewer.Refresh(ctx)
}

func (t *Tracker) Snapshot(now time.Time) View {
	return t.viewer.Snapshot(now)
}

func (t *Tracker) Close() {
	t.viewer.Deactivate()
}

// SubjectModal - живая карта одного стажера
type SubjectModal struct {
	viewer    *Viewer
	subjectID uuid.UUID
}

func NewSubjectModal(viewer *Viewer) *SubjectModal {
	return &SubjectModal{viewer: viewer}
}

// Open начинает опрос компании стажера
func (m *SubjectModal) Open(ctx context.Context, companyID, subjectID uuid.UUID) {
	m.subjectID = subjectID
	m.viewer.Activate(ctx, companyID)
}

func (m *SubjectModal) Close() {
	m.viewer.Deactivate()
}

func (m *SubjectModal) Refresh(ctx context.Context) error {
	return m.viewer.Refresh(ctx)
}

// Snapshot оставляет в снимке только выбранного стажера
func (m *SubjectModal) Snapshot(now time.Time) View {
	view := m.viewer.Snapshot(now)
	markers := view.Markers[:0:0]
	for _, mk := range view.Markers {
		if mk.SubjectID == m.subjectID {
			markers = append(markers, mk)
		}
	}
	view.Markers = markers
	view.Located = len(markers)
	return view
}
