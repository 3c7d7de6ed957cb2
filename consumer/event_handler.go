package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"analytics-service/domain"
	"analytics-service/usecase"
)

// ForecastRequestedPayload represents the payload for the
// ForecastRequested event.
type ForecastRequestedPayload struct {
	ParishID int       `json:"parish_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// ForecastEventHandler runs forecast generation in response to stream
// events.
type ForecastEventHandler struct {
	forecastUsecase *usecase.GenerateForecastUsecase
	logger          *slog.Logger
}

// NewForecastEventHandler creates a new ForecastEventHandler.
func NewForecastEventHandler(forecastUsecase *usecase.GenerateForecastUsecase, logger *slog.Logger) *ForecastEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastEventHandler{
		forecastUsecase: forecastUsecase,
		logger:          logger,
	}
}

// HandleEvent processes a single event.
func (h *ForecastEventHandler) HandleEvent(ctx context.Context, event Event) error {
	switch event.EventType {
	case "ForecastRequested":
		return h.handleForecastRequested(ctx, event)
	default:
		h.logger.Warn("unknown event type, skipping",
			"event_type", event.EventType,
			"event_id", event.EventID,
		)
		return nil
	}
}

func (h *ForecastEventHandler) handleForecastRequested(ctx context.Context, event Event) error {
	var payload ForecastRequestedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal ForecastRequested payload",
			"event_id", event.EventID,
			"error", err,
		)
		// Malformed payloads will never parse, don't leave them pending
		return nil
	}

	if payload.ParishID <= 0 {
		h.logger.Warn("ForecastRequested with non-positive parish_id, skipping",
			"event_id", event.EventID,
			"parish_id", payload.ParishID,
		)
		return nil
	}

	result, err := h.forecastUsecase.Execute(ctx, payload.ParishID, payload.Start, payload.End)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRange) {
			// A bad range will stay bad on retry, ack and move on
			h.logger.Warn("ForecastRequested with invalid range, skipping",
				"event_id", event.EventID,
				"start", payload.Start,
				"end", payload.End,
			)
			return nil
		}
		return err
	}

	if result.NoData {
		h.logger.Info("forecast event produced no data",
			"event_id", event.EventID,
			"parish_id", payload.ParishID,
		)
		return nil
	}

	h.logger.Info("forecast event committed",
		"event_id", event.EventID,
		"parish_id", payload.ParishID,
		"rows_written", result.RowsWritten,
		"model_version", result.ModelVersion,
	)
	return nil
}
