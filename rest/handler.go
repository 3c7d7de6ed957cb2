package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"analytics-service/domain"
	"analytics-service/usecase"
	appOtel "analytics-service/utils/otel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Handler contains the HTTP handlers for the analytics service.
type Handler struct {
	forecastUsecase *usecase.GenerateForecastUsecase
	logger          *slog.Logger
}

func NewHandler(forecastUsecase *usecase.GenerateForecastUsecase, logger *slog.Logger) *Handler {
	return &Handler{
		forecastUsecase: forecastUsecase,
		logger:          logger,
	}
}

type ForecastRequest struct {
	ParishID    int       `json:"parish_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Granularity string    `json:"granularity"` // 'global' | 'zone' | 'hex'
}

type ForecastSummary struct {
	RowsWritten  int    `json:"rows_written"`
	ModelVersion string `json:"model_version"`
}

type NoDataSummary struct {
	Message string `json:"message"`
}

type ForecastResponse struct {
	Status  string `json:"status"`
	Summary any    `json:"summary"`
}

// HandleForecast runs a forecast for one parish and time range and
// reports the written-row summary.
func (h *Handler) HandleForecast(c echo.Context) error {
	ctx := c.Request().Context()

	var req ForecastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.ParishID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "parish_id must be a positive integer")
	}
	if !req.End.After(req.Start) {
		return echo.NewHTTPError(http.StatusBadRequest, "end must be after start")
	}

	runID := uuid.NewString()
	log := h.logger.With("run_id", runID, "parish_id", req.ParishID)
	log.InfoContext(ctx, "forecast run started",
		"start", req.Start, "end", req.End, "granularity", req.Granularity)

	runStart := time.Now()
	result, err := h.forecastUsecase.Execute(ctx, req.ParishID, req.Start, req.End)
	if err != nil {
		recordRun(c, "http", "error", 0, time.Since(runStart))
		if errors.Is(err, domain.ErrInvalidRange) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.ErrorContext(ctx, "forecast run failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "forecast generation failed")
	}

	if result.NoData {
		recordRun(c, "http", "no_data", 0, time.Since(runStart))
		log.InfoContext(ctx, "forecast run finished: no historical data")
		return c.JSON(http.StatusOK, ForecastResponse{
			Status:  "ok",
			Summary: NoDataSummary{Message: "No data"},
		})
	}

	recordRun(c, "http", "ok", result.RowsWritten, time.Since(runStart))
	log.InfoContext(ctx, "forecast run committed",
		"rows_written", result.RowsWritten,
		"baseline", result.Baseline,
		"model_version", result.ModelVersion)

	return c.JSON(http.StatusOK, ForecastResponse{
		Status: "ok",
		Summary: ForecastSummary{
			RowsWritten:  result.RowsWritten,
			ModelVersion: result.ModelVersion,
		},
	})
}

func recordRun(c echo.Context, trigger, outcome string, rows int, duration time.Duration) {
	m := appOtel.Metrics
	if m == nil {
		return
	}
	ctx := c.Request().Context()
	attrs := metric.WithAttributes(
		attribute.String("trigger", trigger),
		attribute.String("outcome", outcome),
	)
	m.RunsTotal.Add(ctx, 1, attrs)
	if rows > 0 {
		m.RowsWrittenTotal.Add(ctx, int64(rows), attrs)
	}
	m.RunDuration.Record(ctx, duration.Seconds(), attrs)
}
