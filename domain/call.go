package domain

import (
	"errors"
	"time"
)

// Call is a single historical emergency call, reduced to what the
// forecasting pipeline needs: which parish it belongs to and when it
// was responded to.
type Call struct {
	parishID   int
	occurredAt time.Time
}

func NewCall(parishID int, occurredAt time.Time) (*Call, error) {
	if parishID <= 0 {
		return nil, errors.New("call parish ID must be positive")
	}
	if occurredAt.IsZero() {
		return nil, errors.New("call timestamp cannot be zero")
	}

	return &Call{
		parishID:   parishID,
		occurredAt: occurredAt,
	}, nil
}

func (c *Call) ParishID() int {
	return c.parishID
}

func (c *Call) OccurredAt() time.Time {
	return c.occurredAt
}
