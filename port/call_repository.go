package port

import (
	"context"
	"time"

	"analytics-service/domain"
)

type CallRepository interface {
	// FetchCalls retrieves all calls for a parish whose timestamp lies
	// in [rangeStart, rangeEnd). Rows with a NULL timestamp are
	// excluded at the source.
	FetchCalls(ctx context.Context, parishID int, rangeStart, rangeEnd time.Time) ([]*domain.Call, error)
}

type RepositoryError struct {
	Op  string
	Err string
}

func (e *RepositoryError) Error() string {
	return e.Op + ": " + e.Err
}
