package usecase

import (
	"context"
	"time"

	"analytics-service/domain"
	"analytics-service/port"
)

type GenerateForecastUsecase struct {
	callRepo      port.CallRepository
	forecastStore port.ForecastStore
}

// ForecastResult summarizes one forecast run. NoData marks the
// successful-but-empty outcome: no historical calls in the lookback
// window, nothing written.
type ForecastResult struct {
	NoData       bool
	RowsWritten  int
	ModelVersion string
	Baseline     float64
}

func NewGenerateForecastUsecase(callRepo port.CallRepository, forecastStore port.ForecastStore) *GenerateForecastUsecase {
	return &GenerateForecastUsecase{
		callRepo:      callRepo,
		forecastStore: forecastStore,
	}
}

// Execute runs the whole pipeline for one parish and requested range:
// load history, bucket by hour, estimate the baseline, project it flat
// across [start, end), and persist the rows atomically.
func (u *GenerateForecastUsecase) Execute(ctx context.Context, parishID int, start, end time.Time) (*ForecastResult, error) {
	if !end.After(start) {
		return nil, domain.ErrInvalidRange
	}

	calls, err := u.callRepo.FetchCalls(ctx, parishID, start.Add(-domain.LookbackWindow), end)
	if err != nil {
		return nil, err
	}

	if len(calls) == 0 {
		return &ForecastResult{NoData: true}, nil
	}

	buckets := domain.BucketByHour(calls)

	baseline, err := domain.MeanPerBucket(buckets)
	if err != nil {
		return nil, err
	}

	rows := domain.ProjectFlat(parishID, start, end, baseline)

	written, err := u.forecastStore.SaveRows(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &ForecastResult{
		RowsWritten:  written,
		ModelVersion: domain.ModelVersion,
		Baseline:     baseline,
	}, nil
}
