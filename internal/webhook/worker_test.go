package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/ojt_tracker/internal/config"
)

func newTestWorker(url string, clock clockwork.Clock) *WebhookWorker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  100 * time.Millisecond,
	}
	return NewWebhookWorker(nil, logger, cfg, clock)
}

func testEvent() (WebhookEvent, string) {
	event := WebhookEvent{
		Type:       EventTimeIn,
		RecordID:   uuid.New(),
		StudentID:  uuid.New(),
		Date:       "2026-10-18",
		InsideZone: true,
		Timestamp:  time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC),
	}
	payload, _ := json.Marshal(event)
	return event, string(payload)
}

func TestDeliver_SignsPayload(t *testing.T) {
	event, payload := testEvent()
	var received atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, payload, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, Sign(payload, "s3cret"), r.Header.Get(SignatureHeader))
		received.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	w := newTestWorker(server.URL, nil)
	require.NoError(t, w.Deliver(context.Background(), event, payload))
	assert.Equal(t, int32(1), received.Load())
}

func TestDeliver_RetriesWithExponentialBackoff(t *testing.T) {
	event, payload := testEvent()
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	clock := clockwork.NewFakeClock()
	w := newTestWorker(server.URL, clock)

	errCh := make(chan error, 1)
	go func() { errCh <- w.Deliver(context.Background(), event, payload) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Первая пауза - базовая задержка
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	assert.Equal(t, int32(1), attempts.Load())
	clock.Advance(100 * time.Millisecond)

	// Вторая пауза вдвое длиннее
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	assert.Equal(t, int32(2), attempts.Load())
	clock.Advance(199 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(2), attempts.Load())
	clock.Advance(time.Millisecond)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("delivery did not finish")
	}
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDeliver_GivesUpAfterMaxRetries(t *testing.T) {
	event, payload := testEvent()
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	w := newTestWorker(server.URL, nil)
	w.cfg.WebhookBaseDelay = time.Millisecond

	err := w.Deliver(context.Background(), event, payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDeliver_SkipsWithoutURL(t *testing.T) {
	event, payload := testEvent()
	w := newTestWorker("", nil)
	assert.NoError(t, w.Deliver(context.Background(), event, payload))
}

func TestDeliver_StopsOnCancel(t *testing.T) {
	event, payload := testEvent()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	clock := clockwork.NewFakeClock()
	w := newTestWorker(server.URL, clock)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- w.Deliver(ctx, event, payload) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
	cancel()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-waitCtx.Done():
		t.Fatal("delivery ignored cancellation")
	}
}

func TestSign(t *testing.T) {
	// echo -n 'payload' | openssl dgst -sha256 -hmac 'key'
	assert.Equal(t, "5d98b45c90a207fa998ce639fea6f02ecc8cc3f36fef81d694fb856b4d0a28ca", Sign("payload", "key"))
	assert.NotEqual(t, Sign("payload", "key"), Sign("payload", "other"))
}
