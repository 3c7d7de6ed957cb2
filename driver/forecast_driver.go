package driver

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const insertForecastRowQuery = `
	INSERT INTO forecast_heatmap (
		parish_id,
		cell_id,
		bucket_start,
		bucket_end,
		forecast_calls,
		model_version
	)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// InsertForecastRows writes all rows of one forecast run inside a
// single transaction. Uses pgx.Batch to send every insert in one round
// trip; any failed insert rolls back the whole run.
func (d *DatabaseDriver) InsertForecastRows(ctx context.Context, rows []*ForecastRowModel) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, &DriverError{Op: "InsertForecastRows", Err: "begin tx: " + err.Error()}
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertForecastRowQuery,
			row.ParishID,
			row.CellID,
			row.BucketStart,
			row.BucketEnd,
			row.ForecastCalls,
			row.ModelVersion,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range rows {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, &DriverError{
				Op:  "InsertForecastRows",
				Err: fmt.Sprintf("insert row %d: %v", i, err),
			}
		}
	}
	if err := br.Close(); err != nil {
		return 0, &DriverError{Op: "InsertForecastRows", Err: "close batch: " + err.Error()}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &DriverError{Op: "InsertForecastRows", Err: "commit tx: " + err.Error()}
	}

	return len(rows), nil
}
