package driver

import (
	"context"
	"time"
)

// response_date_time is stored as text upstream; cast once here so the
// comparison and the scanned value share the same timestamptz semantics.
const fetchCallsQuery = `
	SELECT parish_id, response_date_time::timestamptz AS call_ts
	FROM calls
	WHERE parish_id = $1
	  AND response_date_time IS NOT NULL
	  AND response_date_time::timestamptz >= $2
	  AND response_date_time::timestamptz < $3
`

// FetchCalls returns all calls for the parish whose timestamp lies in
// [rangeStart, rangeEnd). Order is unspecified.
func (d *DatabaseDriver) FetchCalls(ctx context.Context, parishID int, rangeStart, rangeEnd time.Time) ([]*CallRow, error) {
	rows, err := d.pool.Query(ctx, fetchCallsQuery, parishID, rangeStart, rangeEnd)
	if err != nil {
		return nil, &DriverError{
			Op:  "FetchCalls",
			Err: err.Error(),
		}
	}
	defer rows.Close()

	var calls []*CallRow
	for rows.Next() {
		var call CallRow
		if err := rows.Scan(&call.ParishID, &call.OccurredAt); err != nil {
			return nil, &DriverError{
				Op:  "FetchCalls",
				Err: "scan: " + err.Error(),
			}
		}
		calls = append(calls, &call)
	}

	if err := rows.Err(); err != nil {
		return nil, &DriverError{
			Op:  "FetchCalls",
			Err: err.Error(),
		}
	}

	return calls, nil
}
