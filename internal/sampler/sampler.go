package sampler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Provider - платформенный примитив непрерывного наблюдения за геолокацией.
// Канал закрывается провайдером после отмены ctx.
type Provider interface {
	Watch(ctx context.Context, opts Options) (<-chan Update, error)
}

var ErrAlreadyStarted = errors.New("sampler already started")

// Sampler держит одну подписку на провайдер и пишет отметки в Cell
type Sampler struct {
	provider Provider
	opts     Options
	cell     *Cell
	clock    clockwork.Clock
	logger   *logrus.Logger

	mu     sync.Mutex
	err    *PositionError
	cancel context.CancelFunc
	done   chan struct{}
}

func New(provider Provider, opts Options, cell *Cell, clock clockwork.Clock, logger *logrus.Logger) *Sampler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Sampler{
		provider: provider,
		opts:     opts,
		cell:     cell,
		clock:    clock,
		logger:   logger,
	}
}

// Cell возвращает ячейку последней отметки
func (s *Sampler) Cell() *Cell {
	return s.cell
}

// Start подписывается на провайдер. Если геолокации нет, ошибка Unsupported
// выставляется сразу и подписка не создается.
func (s *Sampler) Start(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"component": "sampler",
		"method":    "Start",
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	if s.provider == nil {
		s.err = &PositionError{Code: Unsupported, Err: ErrUnsupported}
		log.Warn("No geolocation provider configured")
		return s.err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	updates, err := s.provider.Watch(watchCtx, s.opts)
	if err != nil {
		cancel()
		s.err = Classify(err)
		log.WithError(err).WithField("code", s.err.Code.String()).Warn("Failed to subscribe to geolocation")
		return s.err
	}

	done := make(chan struct{})
	s.cancel, s.done = cancel, done
	go s.run(watchCtx, updates, done)

	log.WithFields(logrus.Fields{
		"high_accuracy": s.opts.HighAccuracy,
		"timeout":       s.opts.Timeout,
		"maximum_age":   s.opts.MaximumAge,
	}).Debug("Geolocation watch started")
	return nil
}

// Stop синхронно отменяет подписку: после возврата старые колбэки больше не приходят
func (s *Sampler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Retry сбрасывает ошибку и пересоздает подписку
func (s *Sampler) Retry(ctx context.Context) error {
	s.logger.WithField("component", "sampler").Info("Restarting geolocation watch")
	s.Stop()
	s.setErr(nil)
	return s.Start(ctx)
}

// Err возвращает текущую ошибку геолокации или nil
func (s *Sampler) Err() *PositionError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		return nil
	}
	e := *s.err
	return &e
}

// Running сообщает, активна ли подписка
func (s *Sampler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Sampler) setErr(err *PositionError) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *Sampler) run(ctx context.Context, updates <-chan Update, done chan struct{}) {
	defer close(done)
	log := s.logger.WithField("component", "sampler")

	// сторожевой таймер: нет отметок дольше Timeout - ошибка Timeout, подписка остается
	var timer clockwork.Timer
	if s.opts.Timeout > 0 {
		timer = s.clock.NewTimer(s.opts.Timeout)
		defer timer.Stop()
	}
	s.loop(ctx, updates, timer, log)
}

func (s *Sampler) loop(ctx context.Context, updates <-chan Update, timer clockwork.Timer, log *logrus.Entry) {
	var timeout <-chan time.Time
	if timer != nil {
		timeout = timer.Chan()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-timeout:
			log.Warn("No location fix within timeout")
			s.setErr(&PositionError{Code: Timeout})
			timer.Reset(s.opts.Timeout)
		case u, ok := <-updates:
			if !ok {
				return
			}
			switch {
			case u.Err != nil:
				log.WithField("code", u.Err.Code.String()).WithError(u.Err).Warn("Geolocation error")
				s.setErr(u.Err)
			case u.Sample != nil:
				if s.tooOld(*u.Sample) {
					log.WithField("timestamp", u.Sample.Timestamp).Debug("Skipping stale location fix")
					continue
				}
				s.cell.Store(*u.Sample)
				s.setErr(nil)
				if timer != nil {
					timer.Reset(s.opts.Timeout)
				}
			}
		}
	}
}

// tooOld - отметка старше MaximumAge; отметка без времени принимается
func (s *Sampler) tooOld(sample Sample) bool {
	if s.opts.MaximumAge <= 0 || sample.Timestamp.IsZero() {
		return false
	}
	return s.clock.Now().Sub(sample.Timestamp) > s.opts.MaximumAge
}
