package port

import (
	"context"

	"analytics-service/domain"
)

type ForecastStore interface {
	// SaveRows persists all rows of one forecast run as a single unit
	// of work. Either every row becomes visible or none do. Returns
	// the number of rows written.
	SaveRows(ctx context.Context, rows []domain.ForecastRow) (int, error)
}

type StoreError struct {
	Op  string
	Err string
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err
}
