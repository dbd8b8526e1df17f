package liveview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
)

//go:generate mockgen -source=viewer.go -destination=mocks/fetcher_mock.go -package=mocks

// Fetcher - источник данных живой карты
type Fetcher interface {
	Companies(ctx context.Context) ([]models.Company, error)
	Company(ctx context.Context, id uuid.UUID) (*models.Company, error)
	CompanyStudents(ctx context.Context, id uuid.UUID) ([]models.TrackedSubject, error)
}

const (
	DefaultPollInterval = 10 * time.Second
	DefaultStaleAfter   = 5 * time.Minute
)

type Options struct {
	PollInterval time.Duration
	StaleAfter   time.Duration
}

// Viewer опрашивает сервер по таймеру и держит последний успешный список стажеров.
// Один Viewer обслуживает один контекст (компанию) за раз.
type Viewer struct {
	fetcher Fetcher
	clock   clockwork.Clock
	logger  *logrus.Logger
	opts    Options

	mu          sync.Mutex
	companyID   uuid.UUID
	generation  uint64
	company     *models.Company
	subjects    []models.TrackedSubject
	lastUpdated time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

func NewViewer(fetcher Fetcher, clock clockwork.Clock, logger *logrus.Logger, opts Options) *Viewer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = DefaultStaleAfter
	}
	return &Viewer{
		fetcher: fetcher,
		clock:   clock,
		logger:  logger,
		opts:    opts,
	}
}

// Activate показывает компанию id: старый опрос синхронно останавливается,
// прежние данные сразу очищаются, затем сразу идет запрос и запускается новый интервал.
func (v *Viewer) Activate(ctx context.Context, id uuid.UUID) {
	pollCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	// замена цикла под одной блокировкой: параллельные Activate не теряют чужой cancel
	v.mu.Lock()
	oldCancel, oldDone := v.cancel, v.done
	v.generation++
	gen := v.generation
	v.companyID = id
	v.company = nil
	v.subjects = nil
	v.lastUpdated = time.Time{}
	v.cancel, v.done = cancel, done
	v.mu.Unlock()

	if oldCancel != nil {
		oldCancel()
		<-oldDone
	}

	v.logger.WithFields(logrus.Fields{
		"component":  "liveview",
		"company_id": id,
	}).Info("Live view activated")

	go v.poll(pollCtx, gen, id, done)
}

// Switch - смена компании без закрытия просмотра
func (v *Viewer) Switch(ctx context.Context, id uuid.UUID) {
	v.Activate(ctx, id)
}

// Deactivate отменяет опрос; после возврата фоновых запросов нет
func (v *Viewer) Deactivate() {
	v.mu.Lock()
	cancel, done := v.cancel, v.done
	v.cancel, v.done = nil, nil
	v.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Active сообщает, идет ли опрос
func (v *Viewer) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cancel != nil
}

// Refresh запрашивает данные сразу, не дожидаясь тика; закрытый просмотр не обновляется
func (v *Viewer) Refresh(ctx context.Context) error {
	v.mu.Lock()
	gen, id, active := v.generation, v.companyID, v.cancel != nil
	v.mu.Unlock()
	if !active || id == uuid.Nil {
		return nil
	}
	return v.fetchSubjects(ctx, gen, id)
}

func (v *Viewer) poll(ctx context.Context, gen uint64, id uuid.UUID, done chan struct{}) {
	defer close(done)
	if ctx.Err() != nil {
		return
	}

	ticker := v.clock.NewTicker(v.opts.PollInterval)
	defer ticker.Stop()

	v.fetchCompany(ctx, gen, id)
	_ = v.fetchSubjects(ctx, gen, id)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			_ = v.fetchSubjects(ctx, gen, id)
		}
	}
}

func (v *Viewer) fetchCompany(ctx context.Context, gen uint64, id uuid.UUID) {
	company, err := v.fetcher.Company(ctx, id)
	if err != nil {
		v.logger.WithField("company_id", id).WithError(err).Warn("Failed to fetch company for live view")
		return
	}
	v.mu.Lock()
	if gen == v.generation {
		v.company = company
	}
	v.mu.Unlock()
}

// fetchSubjects: ошибка только логируется, на экране остаются последние успешные данные.
// Ответ для устаревшего контекста отбрасывается.
func (v *Viewer) fetchSubjects(ctx context.Context, gen uint64, id uuid.UUID) error {
	subjects, err := v.fetcher.CompanyStudents(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			v.logger.WithField("company_id", id).WithError(err).Warn("Failed to poll student locations")
		}
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		return nil
	}
	v.subjects = subjects
	v.lastUpdated = v.clock.Now()
	return nil
}

// Marker - точка стажера на карте
type Marker struct {
	SubjectID uuid.UUID
	Name      string
	Avatar    string
	Program   string
	Position  geo.AppCoordinate
	UpdatedAt time.Time
	Staleness string
	Stale     bool
}

// View - снимок для отрисовки
type View struct {
	CompanyID   uuid.UUID
	CompanyName string
	Zone        *geo.SafeZone
	Markers     []Marker
	Total       int
	Located     int
	LastUpdated time.Time
}

// Snapshot строит снимок на момент now; метки давности считаются здесь и не кешируются
func (v *Viewer) Snapshot(now time.Time) View {
	v.mu.Lock()
	defer v.mu.Unlock()

	view := View{
		CompanyID:   v.companyID,
		Total:       len(v.subjects),
		LastUpdated: v.lastUpdated,
	}
	if v.company != nil {
		view.CompanyName = v.company.Name
		view.Zone = v.company.Zone()
	}
	for _, s := range v.subjects {
		if s.LatestLocation == nil {
			continue
		}
		loc := s.LatestLocation
		view.Markers = append(view.Markers, Marker{
			SubjectID: s.ID,
			Name:      s.DisplayName(),
			Avatar:    s.Avatar,
			Program:   s.Program,
			Position:  geo.AppCoordinate{Lat: loc.Lat, Lng: loc.Lng},
			UpdatedAt: loc.Timestamp,
			Staleness: StalenessLabel(loc.Timestamp, now),
			Stale:     now.Sub(loc.Timestamp) > v.opts.StaleAfter,
		})
	}
	view.Located = len(view.Markers)
	return view
}
