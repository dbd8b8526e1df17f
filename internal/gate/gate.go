package gate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
	"github.com/shenikar/ojt_tracker/internal/sampler"
)

//go:generate mockgen -source=gate.go -destination=mocks/api_mock.go -package=mocks

// AttendanceAPI определяет контракт бэкенда посещаемости
type AttendanceAPI interface {
	MyRecords(ctx context.Context) ([]models.AttendanceRecord, error)
	Company(ctx context.Context, id uuid.UUID) (*models.Company, error)
	TimeIn(ctx context.Context, at geo.Position) (*models.AttendanceRecord, error)
	TimeOut(ctx context.Context, at *geo.Position) (*models.AttendanceRecord, error)
}

// Broadcaster отправляет текущую точку на сервер
type Broadcaster interface {
	BroadcastLocation(ctx context.Context, at geo.AppCoordinate) error
}

// State - состояние отметки за день
type State int

const (
	NoRecordToday State = iota
	TimedIn
	TimedOut
)

func (s State) String() string {
	switch s {
	case TimedIn:
		return "timed_in"
	case TimedOut:
		return "timed_out"
	}
	return "no_record_today"
}

// StateOf выводит состояние из записи за сегодня
func StateOf(rec *models.AttendanceRecord) State {
	switch {
	case rec == nil || rec.TimeIn == nil:
		return NoRecordToday
	case rec.TimeOut == nil:
		return TimedIn
	}
	return TimedOut
}

const DefaultBroadcastInterval = 5 * time.Second

type Options struct {
	CompanyID         uuid.UUID
	BroadcastInterval time.Duration
	Location          *time.Location
}

// Status - снимок состояния гейта для отображения
type Status struct {
	State          State
	Record         *models.AttendanceRecord
	Sample         *sampler.Sample
	InsideZone     bool
	ZoneRestricted bool
	ZoneLabel      string
	LocationError  string
	LastError      string
}

// Gate - логгер времени: пускает отметку прихода только внутри безопасной зоны
// и независимо от этого раз в интервал транслирует местоположение на сервер
type Gate struct {
	api         AttendanceAPI
	broadcaster Broadcaster
	sampler     *sampler.Sampler
	clock       clockwork.Clock
	logger      *logrus.Logger
	opts        Options

	mu       sync.RWMutex
	state    State
	record   *models.AttendanceRecord
	zone     *geo.SafeZone
	lastErr  error
	inFlight bool

	mountCtx context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func New(api AttendanceAPI, broadcaster Broadcaster, s *sampler.Sampler, clock clockwork.Clock, logger *logrus.Logger, opts Options) *Gate {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if opts.BroadcastInterval <= 0 {
		opts.BroadcastInterval = DefaultBroadcastInterval
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Gate{
		api:         api,
		broadcaster: broadcaster,
		sampler:     s,
		clock:       clock,
		logger:      logger,
		opts:        opts,
	}
}

// Mount запускает сэмплер и цикл трансляции, параллельно загружая запись за сегодня и компанию.
// Ошибка одной загрузки не отменяет другую; гейт остается рабочим и при ошибке.
func (g *Gate) Mount(ctx context.Context) error {
	log := g.logger.WithFields(logrus.Fields{
		"component":  "gate",
		"method":     "Mount",
		"company_id": g.opts.CompanyID,
	})

	g.mu.Lock()
	if g.cancel != nil {
		g.mu.Unlock()
		return ErrAlreadyMounted
	}
	loopCtx, cancel := context.WithCancel(ctx)
	g.mountCtx, g.cancel = loopCtx, cancel
	g.mu.Unlock()

	if err := g.sampler.Start(loopCtx); err != nil {
		log.WithError(err).Warn("Location sampler did not start")
	}

	g.wg.Add(2)
	go g.broadcastLoop(loopCtx)
	go g.watchZone(loopCtx)

	var eg errgroup.Group
	eg.Go(func() error {
		return g.loadToday(ctx)
	})
	eg.Go(func() error {
		return g.loadZone(ctx)
	})
	err := eg.Wait()
	if err != nil {
		log.WithError(err).Warn("Gate mounted with partial data")
		return err
	}

	log.WithField("state", g.State().String()).Info("Gate mounted")
	return nil
}

// Unmount синхронно останавливает трансляцию и сэмплер
func (g *Gate) Unmount() {
	g.mu.Lock()
	cancel := g.cancel
	g.cancel, g.mountCtx = nil, nil
	g.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	g.wg.Wait()
	g.sampler.Stop()
	g.logger.WithField("component", "gate").Info("Gate unmounted")
}

func (g *Gate) loadToday(ctx context.Context) error {
	records, err := g.api.MyRecords(ctx)
	if err != nil {
		g.logger.WithField("component", "gate").WithError(err).Error("Failed to fetch attendance records")
		return fmt.Errorf("gate: could not fetch today's record: %w", err)
	}

	today := models.DateOf(g.clock.Now(), g.opts.Location)
	rec := models.FindForDate(records, today)

	g.mu.Lock()
	g.record = rec
	g.state = StateOf(rec)
	g.mu.Unlock()
	return nil
}

func (g *Gate) loadZone(ctx context.Context) error {
	if g.opts.CompanyID == uuid.Nil {
		return nil
	}
	company, err := g.api.Company(ctx, g.opts.CompanyID)
	if err != nil {
		g.logger.WithField("component", "gate").WithError(err).Error("Failed to fetch company safe zone")
		return fmt.Errorf("gate: could not fetch company: %w", err)
	}
	g.SetZone(company.Zone())
	return nil
}

// RefreshZone перечитывает зону компании
func (g *Gate) RefreshZone(ctx context.Context) error {
	return g.loadZone(ctx)
}

// SetZone заменяет безопасную зону
func (g *Gate) SetZone(zone *geo.SafeZone) {
	g.mu.Lock()
	g.zone = zone
	g.mu.Unlock()
}

// Zone возвращает текущую безопасную зону, nil если компания не загружена
func (g *Gate) Zone() *geo.SafeZone {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.zone
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// IsInsideZone считается по последней отметке и текущей зоне в момент вызова.
// Без настроенной зоны всегда true.
func (g *Gate) IsInsideZone() bool {
	g.mu.RLock()
	zone := g.zone
	g.mu.RUnlock()
	sample, ok := g.sampler.Cell().Load()
	return insideZone(zone, sample, ok)
}

func insideZone(zone *geo.SafeZone, sample sampler.Sample, ok bool) bool {
	if !zone.Restricts() {
		return true
	}
	if !ok {
		return false
	}
	return zone.Contains(sample.Coordinate())
}

// TimeIn отмечает приход. Предусловия проверяются локально, без обращения к серверу.
func (g *Gate) TimeIn(ctx context.Context) (*models.AttendanceRecord, error) {
	log := g.logger.WithFields(logrus.Fields{
		"component": "gate",
		"method":    "TimeIn",
	})

	// на сервер уходит та же отметка, что прошла проверку зоны
	g.mu.Lock()
	sample, err := g.checkTimeIn()
	if err != nil {
		g.lastErr = err
		g.mu.Unlock()
		log.WithError(err).Info("Time-in rejected locally")
		return nil, err
	}
	g.inFlight = true
	g.mu.Unlock()

	rec, err := g.api.TimeIn(ctx, sample.Coordinate().ToPosition())

	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight = false
	if err != nil {
		g.lastErr = err
		log.WithError(err).Warn("Time-in rejected by server")
		return nil, err
	}
	g.record, g.state, g.lastErr = rec, TimedIn, nil
	log.WithField("record_id", rec.ID).Info("Timed in")
	return rec, nil
}

// checkTimeIn вызывается под g.mu и возвращает проверенную отметку
func (g *Gate) checkTimeIn() (sampler.Sample, error) {
	if g.inFlight {
		return sampler.Sample{}, ErrActionInFlight
	}
	switch g.state {
	case TimedIn:
		return sampler.Sample{}, ErrAlreadyTimedIn
	case TimedOut:
		return sampler.Sample{}, ErrDayComplete
	}
	sample, ok := g.sampler.Cell().Load()
	if !ok {
		return sampler.Sample{}, ErrNoLocation
	}
	if !insideZone(g.zone, sample, true) {
		return sampler.Sample{}, ErrOutsideZone
	}
	return sample, nil
}

// TimeOut отмечает уход. Зона намеренно не проверяется: уйти можно откуда угодно.
func (g *Gate) TimeOut(ctx context.Context) (*models.AttendanceRecord, error) {
	log := g.logger.WithFields(logrus.Fields{
		"component": "gate",
		"method":    "TimeOut",
	})

	g.mu.Lock()
	var err error
	switch {
	case g.inFlight:
		err = ErrActionInFlight
	case g.state != TimedIn:
		err = ErrNotTimedIn
	}
	if err != nil {
		g.lastErr = err
		g.mu.Unlock()
		log.WithError(err).Info("Time-out rejected locally")
		return nil, err
	}
	g.inFlight = true
	g.mu.Unlock()

	var at *geo.Position
	if sample, ok := g.sampler.Cell().Load(); ok {
		p := sample.Coordinate().ToPosition()
		at = &p
	}
	rec, err := g.api.TimeOut(ctx, at)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight = false
	if err != nil {
		g.lastErr = err
		log.WithError(err).Warn("Time-out rejected by server")
		return nil, err
	}
	g.record, g.state, g.lastErr = rec, TimedOut, nil
	log.WithField("with_location", at != nil).Info("Timed out")
	return rec, nil
}

// RetryGPS пересоздает подписку сэмплера; запись и трансляция не затрагиваются
func (g *Gate) RetryGPS() error {
	g.mu.RLock()
	ctx := g.mountCtx
	g.mu.RUnlock()
	if ctx == nil {
		return ErrNotMounted
	}
	return g.sampler.Retry(ctx)
}

// Status возвращает снимок состояния
func (g *Gate) Status() Status {
	g.mu.RLock()
	st := Status{
		State:          g.state,
		Record:         g.record,
		ZoneRestricted: g.zone.Restricts(),
		LastError:      UserMessage(g.lastErr),
	}
	zone := g.zone
	g.mu.RUnlock()

	if zone != nil {
		st.ZoneLabel = zone.Label
	}
	sample, ok := g.sampler.Cell().Load()
	if ok {
		st.Sample = &sample
	}
	st.InsideZone = insideZone(zone, sample, ok)
	if perr := g.sampler.Err(); perr != nil {
		st.LocationError = perr.Message()
	}
	return st
}

// broadcastLoop: тикер создается один раз и не пересоздается на новых отметках,
// каждый тик читает последнюю отметку из ячейки в момент срабатывания
func (g *Gate) broadcastLoop(ctx context.Context) {
	defer g.wg.Done()

	cell := g.sampler.Cell()
	ticker := g.clock.NewTicker(g.opts.BroadcastInterval)
	defer ticker.Stop()

	firstFix := cell.Changed()
	if cell.Version() > 0 {
		g.broadcast(ctx)
		firstFix = nil
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-firstFix:
			firstFix = nil
			g.broadcast(ctx)
		case <-ticker.Chan():
			g.broadcast(ctx)
		}
	}
}

func (g *Gate) broadcast(ctx context.Context) {
	sample, ok := g.sampler.Cell().Load()
	if !ok {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, g.opts.BroadcastInterval)
	defer cancel()
	if err := g.broadcaster.BroadcastLocation(callCtx, sample.Coordinate()); err != nil {
		g.logger.WithFields(logrus.Fields{
			"component": "gate",
			"method":    "broadcast",
		}).WithError(err).Warn("Failed to broadcast location")
	}
}

// watchZone следит за сменой отметок и логирует вход/выход из зоны
func (g *Gate) watchZone(ctx context.Context) {
	defer g.wg.Done()

	cell := g.sampler.Cell()
	prev := g.IsInsideZone()
	for {
		changed := cell.Changed()
		select {
		case <-ctx.Done():
			return
		case <-changed:
		}

		inside := g.IsInsideZone()
		if inside == prev {
			continue
		}
		prev = inside
		entry := g.logger.WithField("component", "gate")
		if inside {
			entry.Info("Entered safe zone")
		} else {
			entry.Info("Left safe zone")
		}
	}
}
