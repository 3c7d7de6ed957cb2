package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"analytics-service/domain"
	"analytics-service/port"
)

// Mock implementations for testing
type mockCallRepo struct {
	calls []*domain.Call
	err   error

	gotParishID   int
	gotRangeStart time.Time
	gotRangeEnd   time.Time
}

func (m *mockCallRepo) FetchCalls(ctx context.Context, parishID int, rangeStart, rangeEnd time.Time) ([]*domain.Call, error) {
	m.gotParishID = parishID
	m.gotRangeStart = rangeStart
	m.gotRangeEnd = rangeEnd
	if m.err != nil {
		return nil, m.err
	}
	return m.calls, nil
}

type mockForecastStore struct {
	savedRows []domain.ForecastRow
	err       error
}

func (m *mockForecastStore) SaveRows(ctx context.Context, rows []domain.ForecastRow) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.savedRows = append(m.savedRows, rows...)
	return len(rows), nil
}

func mustCall(t *testing.T, parishID int, occurredAt time.Time) *domain.Call {
	t.Helper()
	call, err := domain.NewCall(parishID, occurredAt)
	if err != nil {
		t.Fatalf("NewCall: %v", err)
	}
	return call
}

func TestGenerateForecastUsecase_Execute(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	history := start.Add(-24 * time.Hour)

	tests := []struct {
		name         string
		mockCalls    []*domain.Call
		repoErr      error
		storeErr     error
		start        time.Time
		end          time.Time
		wantNoData   bool
		wantWritten  int
		wantBaseline float64
		wantErr      error
	}{
		{
			name: "successful run",
			mockCalls: []*domain.Call{
				mustCall(t, 7, history.Add(10*time.Hour+15*time.Minute)),
				mustCall(t, 7, history.Add(10*time.Hour+40*time.Minute)),
				mustCall(t, 7, history.Add(11*time.Hour+5*time.Minute)),
			},
			start:        start,
			end:          end,
			wantWritten:  2,
			wantBaseline: 1.5,
		},
		{
			name:       "no historical data short-circuits",
			mockCalls:  nil,
			start:      start,
			end:        end,
			wantNoData: true,
		},
		{
			name:    "repository error propagates",
			repoErr: &port.RepositoryError{Op: "FetchCalls", Err: "db error"},
			start:   start,
			end:     end,
			wantErr: &port.RepositoryError{},
		},
		{
			name: "store error propagates",
			mockCalls: []*domain.Call{
				mustCall(t, 7, history),
			},
			storeErr: &port.StoreError{Op: "SaveRows", Err: "commit failed"},
			start:    start,
			end:      end,
			wantErr:  &port.StoreError{},
		},
		{
			name:    "inverted range rejected up front",
			start:   end,
			end:     start,
			wantErr: domain.ErrInvalidRange,
		},
		{
			name:    "empty range rejected up front",
			start:   start,
			end:     start,
			wantErr: domain.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCallRepo{calls: tt.mockCalls, err: tt.repoErr}
			store := &mockForecastStore{err: tt.storeErr}
			u := NewGenerateForecastUsecase(repo, store)

			result, err := u.Execute(context.Background(), 7, tt.start, tt.end)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if errors.Is(tt.wantErr, domain.ErrInvalidRange) && !errors.Is(err, domain.ErrInvalidRange) {
					t.Fatalf("expected ErrInvalidRange, got %v", err)
				}
				if len(store.savedRows) != 0 {
					t.Fatalf("expected no rows written on failure, got %d", len(store.savedRows))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantNoData {
				if !result.NoData {
					t.Fatal("expected NoData result")
				}
				if len(store.savedRows) != 0 {
					t.Fatalf("no-data run must write zero rows, wrote %d", len(store.savedRows))
				}
				return
			}

			if result.RowsWritten != tt.wantWritten {
				t.Errorf("RowsWritten = %d, want %d", result.RowsWritten, tt.wantWritten)
			}
			if result.Baseline != tt.wantBaseline {
				t.Errorf("Baseline = %v, want %v", result.Baseline, tt.wantBaseline)
			}
			if result.ModelVersion != domain.ModelVersion {
				t.Errorf("ModelVersion = %q, want %q", result.ModelVersion, domain.ModelVersion)
			}
			for _, row := range store.savedRows {
				if row.ForecastCalls != tt.wantBaseline {
					t.Errorf("row %v carries %v, want flat baseline %v", row.BucketStart, row.ForecastCalls, tt.wantBaseline)
				}
			}
		})
	}
}

func TestGenerateForecastUsecase_LookbackWindow(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	repo := &mockCallRepo{}
	store := &mockForecastStore{}
	u := NewGenerateForecastUsecase(repo, store)

	_, err := u.Execute(context.Background(), 12, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.gotParishID != 12 {
		t.Errorf("parishID = %d, want 12", repo.gotParishID)
	}
	wantRangeStart := start.Add(-domain.LookbackWindow)
	if !repo.gotRangeStart.Equal(wantRangeStart) {
		t.Errorf("rangeStart = %v, want start minus 90 days (%v)", repo.gotRangeStart, wantRangeStart)
	}
	if !repo.gotRangeEnd.Equal(end) {
		t.Errorf("rangeEnd = %v, want requested end %v", repo.gotRangeEnd, end)
	}
}
