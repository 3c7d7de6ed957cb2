package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for the analytics service.
var Metrics *AnalyticsMetrics

// AnalyticsMetrics contains all metric instruments.
type AnalyticsMetrics struct {
	RunsTotal        metric.Int64Counter
	RowsWrittenTotal metric.Int64Counter
	RunDuration      metric.Float64Histogram
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("analytics-service")

	runsTotal, err := meter.Int64Counter("analytics_forecast_runs_total",
		metric.WithDescription("Total number of forecast runs by trigger and outcome"),
	)
	if err != nil {
		return err
	}

	rowsWrittenTotal, err := meter.Int64Counter("analytics_forecast_rows_written_total",
		metric.WithDescription("Total number of forecast rows committed"),
	)
	if err != nil {
		return err
	}

	runDuration, err := meter.Float64Histogram("analytics_forecast_run_duration_seconds",
		metric.WithDescription("Forecast run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	Metrics = &AnalyticsMetrics{
		RunsTotal:        runsTotal,
		RowsWrittenTotal: rowsWrittenTotal,
		RunDuration:      runDuration,
	}

	return nil
}
