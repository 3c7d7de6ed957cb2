package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"analytics-service/domain"
	"analytics-service/port"
	"analytics-service/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCallRepo struct {
	calls []*domain.Call
	err   error
}

func (s *stubCallRepo) FetchCalls(ctx context.Context, parishID int, rangeStart, rangeEnd time.Time) ([]*domain.Call, error) {
	return s.calls, s.err
}

type stubForecastStore struct {
	written int
	err     error
}

func (s *stubForecastStore) SaveRows(ctx context.Context, rows []domain.ForecastRow) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.written += len(rows)
	return len(rows), nil
}

func newHandler(repo *stubCallRepo, store *stubForecastStore) *ForecastEventHandler {
	u := usecase.NewGenerateForecastUsecase(repo, store)
	return NewForecastEventHandler(u, slog.Default())
}

func forecastEvent(t *testing.T, payload any) Event {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return Event{
		MessageID: "1-0",
		EventID:   "evt-1",
		EventType: "ForecastRequested",
		Source:    "ingestion-service",
		CreatedAt: time.Now(),
		Payload:   raw,
	}
}

func TestForecastEventHandler_HandleEvent(t *testing.T) {
	call, _ := domain.NewCall(7, time.Date(2023, 12, 15, 10, 0, 0, 0, time.UTC))

	t.Run("runs forecast for valid event", func(t *testing.T) {
		repo := &stubCallRepo{calls: []*domain.Call{call}}
		store := &stubForecastStore{}
		h := newHandler(repo, store)

		event := forecastEvent(t, ForecastRequestedPayload{
			ParishID: 7,
			Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC),
		})

		require.NoError(t, h.HandleEvent(context.Background(), event))
		assert.Equal(t, 2, store.written)
	})

	t.Run("unknown event type is acked without running", func(t *testing.T) {
		store := &stubForecastStore{}
		h := newHandler(&stubCallRepo{}, store)

		err := h.HandleEvent(context.Background(), Event{EventType: "SomethingElse"})
		require.NoError(t, err)
		assert.Zero(t, store.written)
	})

	t.Run("malformed payload is acked", func(t *testing.T) {
		h := newHandler(&stubCallRepo{}, &stubForecastStore{})

		err := h.HandleEvent(context.Background(), Event{
			EventType: "ForecastRequested",
			Payload:   json.RawMessage(`{"parish_id":`),
		})
		require.NoError(t, err)
	})

	t.Run("invalid range is acked, not retried", func(t *testing.T) {
		h := newHandler(&stubCallRepo{}, &stubForecastStore{})

		event := forecastEvent(t, ForecastRequestedPayload{
			ParishID: 7,
			Start:    time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, h.HandleEvent(context.Background(), event))
	})

	t.Run("persistence failure is returned for retry", func(t *testing.T) {
		repo := &stubCallRepo{calls: []*domain.Call{call}}
		store := &stubForecastStore{err: &port.StoreError{Op: "SaveRows", Err: "commit failed"}}
		h := newHandler(repo, store)

		event := forecastEvent(t, ForecastRequestedPayload{
			ParishID: 7,
			Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC),
		})
		assert.Error(t, h.HandleEvent(context.Background(), event))
	})

	t.Run("no-data run is acked", func(t *testing.T) {
		h := newHandler(&stubCallRepo{}, &stubForecastStore{})

		event := forecastEvent(t, ForecastRequestedPayload{
			ParishID: 9,
			Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC),
		})
		require.NoError(t, h.HandleEvent(context.Background(), event))
	})
}
