package domain

import "time"

const (
	// BucketWidth is the fixed aggregation interval for both historical
	// counts and projected rows.
	BucketWidth = time.Hour

	// LookbackWindow bounds the historical sample used for the baseline.
	// Policy constant, not derived from the requested range.
	LookbackWindow = 90 * 24 * time.Hour

	// ModelVersion tags every row written by this estimator.
	ModelVersion = "naive_v0"

	// GlobalCell is the sentinel cell ID meaning "whole parish".
	// Finer spatial granularities (zone, hex) reuse the same column.
	GlobalCell = "global"
)

// ForecastRow is one projected hourly estimate, ready to be persisted
// into forecast_heatmap.
type ForecastRow struct {
	ParishID      int
	CellID        string
	BucketStart   time.Time
	BucketEnd     time.Time
	ForecastCalls float64
	ModelVersion  string
}

// BucketByHour groups calls into hourly buckets keyed by the call
// timestamp truncated down to its hour boundary. The map is sparse:
// hours with no calls have no entry.
func BucketByHour(calls []*Call) map[time.Time]int {
	buckets := make(map[time.Time]int, len(calls))
	for _, call := range calls {
		buckets[HourBucket(call.OccurredAt())]++
	}
	return buckets
}

// HourBucket floors a timestamp to its wall-clock hour, keeping the
// original location. time.Truncate would shift buckets in zones whose
// UTC offset is not a whole hour.
func HourBucket(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// MeanPerBucket computes the baseline: the mean call count across the
// observed buckets. Hours absent from the map are not treated as
// zero-count observations, matching the historical aggregation's
// sparse representation.
func MeanPerBucket(buckets map[time.Time]int) (float64, error) {
	if len(buckets) == 0 {
		return 0, ErrNoObservations
	}

	var total int
	for _, count := range buckets {
		total += count
	}
	return float64(total) / float64(len(buckets)), nil
}

// ProjectFlat emits one row per hourly bucket over the half-open range
// [start, end), every row carrying the same baseline value. An
// inverted or empty range produces no rows.
func ProjectFlat(parishID int, start, end time.Time, baseline float64) []ForecastRow {
	if !end.After(start) {
		return nil
	}

	rows := make([]ForecastRow, 0, end.Sub(start)/BucketWidth+1)
	for bucket := start; bucket.Before(end); bucket = bucket.Add(BucketWidth) {
		rows = append(rows, ForecastRow{
			ParishID:      parishID,
			CellID:        GlobalCell,
			BucketStart:   bucket,
			BucketEnd:     bucket.Add(BucketWidth),
			ForecastCalls: baseline,
			ModelVersion:  ModelVersion,
		})
	}
	return rows
}
