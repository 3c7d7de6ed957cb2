package driver

import "time"

// CallRow represents one historical call timestamp from the calls table.
type CallRow struct {
	ParishID   int
	OccurredAt time.Time
}

// ForecastRowModel represents one row bound for forecast_heatmap.
type ForecastRowModel struct {
	ParishID      int
	CellID        string
	BucketStart   time.Time
	BucketEnd     time.Time
	ForecastCalls float64
	ModelVersion  string
}

// DriverError represents an error from the driver layer.
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
