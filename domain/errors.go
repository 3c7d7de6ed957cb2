package domain

import "errors"

// ErrInvalidRange reports a forecast request whose end does not come
// after its start.
var ErrInvalidRange = errors.New("forecast range end must be after start")

// ErrNoObservations reports that the estimator received no historical
// buckets to average. The pipeline short-circuits on an empty history
// before estimation, so hitting this means a caller skipped that check.
var ErrNoObservations = errors.New("no historical observations to estimate from")
