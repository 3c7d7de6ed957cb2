package gateway

import (
	"context"
	"time"

	"analytics-service/domain"
	"analytics-service/driver"
	"analytics-service/port"
)

type CallDriver interface {
	FetchCalls(ctx context.Context, parishID int, rangeStart, rangeEnd time.Time) ([]*driver.CallRow, error)
}

type CallRepositoryGateway struct {
	driver CallDriver
}

func NewCallRepositoryGateway(driver CallDriver) *CallRepositoryGateway {
	return &CallRepositoryGateway{
		driver: driver,
	}
}

func (g *CallRepositoryGateway) FetchCalls(ctx context.Context, parishID int, rangeStart, rangeEnd time.Time) ([]*domain.Call, error) {
	driverCalls, err := g.driver.FetchCalls(ctx, parishID, rangeStart, rangeEnd)
	if err != nil {
		return nil, &port.RepositoryError{
			Op:  "FetchCalls",
			Err: err.Error(),
		}
	}

	if len(driverCalls) == 0 {
		return []*domain.Call{}, nil
	}

	calls := make([]*domain.Call, 0, len(driverCalls))
	for _, driverCall := range driverCalls {
		call, err := domain.NewCall(driverCall.ParishID, driverCall.OccurredAt)
		if err != nil {
			return nil, &port.RepositoryError{
				Op:  "FetchCalls",
				Err: "failed to convert call to domain: " + err.Error(),
			}
		}
		calls = append(calls, call)
	}

	return calls, nil
}
