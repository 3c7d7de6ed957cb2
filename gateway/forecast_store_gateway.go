package gateway

import (
	"context"

	"analytics-service/domain"
	"analytics-service/driver"
	"analytics-service/port"
)

type ForecastDriver interface {
	InsertForecastRows(ctx context.Context, rows []*driver.ForecastRowModel) (int, error)
}

type ForecastStoreGateway struct {
	driver ForecastDriver
}

func NewForecastStoreGateway(driver ForecastDriver) *ForecastStoreGateway {
	return &ForecastStoreGateway{
		driver: driver,
	}
}

func (g *ForecastStoreGateway) SaveRows(ctx context.Context, rows []domain.ForecastRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	driverRows := make([]*driver.ForecastRowModel, 0, len(rows))
	for _, row := range rows {
		driverRows = append(driverRows, &driver.ForecastRowModel{
			ParishID:      row.ParishID,
			CellID:        row.CellID,
			BucketStart:   row.BucketStart,
			BucketEnd:     row.BucketEnd,
			ForecastCalls: row.ForecastCalls,
			ModelVersion:  row.ModelVersion,
		})
	}

	written, err := g.driver.InsertForecastRows(ctx, driverRows)
	if err != nil {
		return 0, &port.StoreError{
			Op:  "SaveRows",
			Err: err.Error(),
		}
	}

	return written, nil
}
