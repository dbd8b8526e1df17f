package sampler

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider - управляемая подписка: тест сам пишет события в канал
type fakeProvider struct {
	mu       sync.Mutex
	watches  int
	channels []chan Update
	contexts []context.Context
	err      error
}

func (p *fakeProvider) Watch(ctx context.Context, _ Options) (<-chan Update, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.watches++
	ch := make(chan Update)
	p.channels = append(p.channels, ch)
	p.contexts = append(p.contexts, ctx)
	return ch, nil
}

func (p *fakeProvider) current() chan Update {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channels[len(p.channels)-1]
}

func newTestSampler(t *testing.T, provider Provider, opts Options, clock clockwork.Clock) *Sampler {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	s := New(provider, opts, NewCell(), clock, logger)
	t.Cleanup(s.Stop)
	return s
}

func noTimeout() Options {
	opts := DefaultOptions()
	opts.Timeout = 0
	return opts
}

func TestSampler_FixIsStoredAndClearsError(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestSampler(t, provider, noTimeout(), nil)
	require.NoError(t, s.Start(context.Background()))

	provider.current() <- Update{Err: &PositionError{Code: PositionUnavailable}}
	require.Eventually(t, func() bool { return s.Err() != nil }, time.Second, 5*time.Millisecond)
	assert.Equal(t, PositionUnavailable, s.Err().Code)

	provider.current() <- Update{Sample: &Sample{Lat: 14.5995, Lng: 120.9842, Timestamp: time.Now()}}
	require.Eventually(t, func() bool { return s.Err() == nil }, time.Second, 5*time.Millisecond)

	got, ok := s.Cell().Load()
	require.True(t, ok)
	assert.Equal(t, 14.5995, got.Lat)
	assert.Equal(t, 120.9842, got.Lng)
}

func TestSampler_TimeoutKeepsSubscription(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestSampler(t, provider, noTimeout(), nil)
	require.NoError(t, s.Start(context.Background()))

	provider.current() <- Update{Err: &PositionError{Code: Timeout}}
	require.Eventually(t, func() bool { return s.Err() != nil }, time.Second, 5*time.Millisecond)
	assert.True(t, s.Running())

	// подписка жива: следующая отметка доходит
	provider.current() <- Update{Sample: &Sample{Lat: 1, Lng: 2}}
	require.Eventually(t, func() bool { return s.Cell().Version() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, provider.watches)
}

func TestSampler_SkipsFixOlderThanMaximumAge(t *testing.T) {
	provider := &fakeProvider{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC))
	s := newTestSampler(t, provider, noTimeout(), clock)
	require.NoError(t, s.Start(context.Background()))

	// unbuffered канал: после отправки цикл уже занят этой отметкой
	provider.current() <- Update{Sample: &Sample{Lat: 1, Lng: 2, Timestamp: clock.Now().Add(-10 * time.Minute)}}
	provider.current() <- Update{Sample: &Sample{Lat: 3, Lng: 4, Timestamp: clock.Now()}}
	require.Eventually(t, func() bool { return s.Cell().Version() >= 1 }, time.Second, 5*time.Millisecond)

	got, ok := s.Cell().Load()
	require.True(t, ok)
	assert.Equal(t, 3.0, got.Lat)
	assert.Equal(t, uint64(1), s.Cell().Version())
}

func TestSampler_StaleFixDoesNotResetWatchdog(t *testing.T) {
	provider := &fakeProvider{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC))
	s := newTestSampler(t, provider, DefaultOptions(), clock)
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(15 * time.Second)
	provider.current() <- Update{Sample: &Sample{Lat: 1, Lng: 2, Timestamp: clock.Now().Add(-time.Minute)}}
	clock.Advance(5 * time.Second)

	require.Eventually(t, func() bool { return s.Err() != nil }, time.Second, 5*time.Millisecond)
	assert.Equal(t, Timeout, s.Err().Code)
	_, ok := s.Cell().Load()
	assert.False(t, ok)
}

func TestSampler_RetryCancelsOldSubscriptionFirst(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestSampler(t, provider, noTimeout(), nil)
	require.NoError(t, s.Start(context.Background()))

	provider.current() <- Update{Err: &PositionError{Code: PermissionDenied}}
	require.Eventually(t, func() bool { return s.Err() != nil }, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Retry(context.Background()))

	provider.mu.Lock()
	oldCtx := provider.contexts[0]
	watches := provider.watches
	provider.mu.Unlock()

	assert.Equal(t, 2, watches)
	assert.Error(t, oldCtx.Err(), "old subscription must be cancelled")
	assert.Nil(t, s.Err())
	assert.True(t, s.Running())
}

func TestSampler_Unsupported(t *testing.T) {
	s := newTestSampler(t, UnsupportedProvider{}, DefaultOptions(), nil)

	err := s.Start(context.Background())
	require.Error(t, err)

	perr := s.Err()
	require.NotNil(t, perr)
	assert.Equal(t, Unsupported, perr.Code)
	assert.False(t, s.Running())
	assert.Equal(t, "Geolocation is not supported by this device.", perr.Message())
}

func TestSampler_StartTwice(t *testing.T) {
	s := newTestSampler(t, &fakeProvider{}, noTimeout(), nil)
	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
}

func TestSampler_WatchdogTimeout(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &fakeProvider{}
	s := newTestSampler(t, provider, DefaultOptions(), clock)
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(20 * time.Second)
	require.Eventually(t, func() bool {
		e := s.Err()
		return e != nil && e.Code == Timeout
	}, time.Second, 5*time.Millisecond)
	assert.True(t, s.Running())

	provider.current() <- Update{Sample: &Sample{Lat: 1, Lng: 1}}
	require.Eventually(t, func() bool { return s.Err() == nil }, time.Second, 5*time.Millisecond)
}

func TestSampler_StopIsSynchronous(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestSampler(t, provider, noTimeout(), nil)
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.Running())

	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Error(t, provider.contexts[0].Err())
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.Equal(t, Unsupported, Classify(ErrUnsupported).Code)
	assert.Equal(t, Unknown, Classify(assert.AnError).Code)

	pe := &PositionError{Code: PermissionDenied}
	assert.Same(t, pe, Classify(pe))
}

func TestCell_ChangedIsClosedOnStore(t *testing.T) {
	c := NewCell()
	_, ok := c.Load()
	assert.False(t, ok)

	ch := c.Changed()
	c.Store(Sample{Lat: 1, Lng: 2})

	select {
	case <-ch:
	default:
		t.Fatal("changed channel must be closed after Store")
	}
	got, ok := c.Load()
	require.True(t, ok)
	assert.Equal(t, 1.0, got.Lat)
	assert.Equal(t, uint64(1), c.Version())
}
