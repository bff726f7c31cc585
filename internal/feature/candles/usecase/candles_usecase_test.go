package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/feature/candles/usecase"
	"quant_backend/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// mockCandleRepository はCandleRepositoryインターフェースのモック実装です。
type mockCandleRepository struct {
	FindRangeFunc   func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error)
	UpsertBatchFunc func(ctx context.Context, candles []entity.Candle) error
	FindRangeCalls  int
}

func (m *mockCandleRepository) FindRange(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
	m.FindRangeCalls++
	if m.FindRangeFunc != nil {
		return m.FindRangeFunc(ctx, symbol, start, end)
	}
	return nil, errors.New("FindRangeFunc is not implemented")
}

func (m *mockCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, candles)
	}
	return errors.New("UpsertBatchFunc is not implemented")
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCandlesUsecase_GetCandles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		symbol    string
		start     time.Time
		end       time.Time
		repoErr   error
		wantErr   error
		wantCalls int
		verify    func(t *testing.T, symbol string, start, end time.Time)
	}{
		{
			name:      "explicit range is passed through",
			symbol:    "AAPL",
			start:     date(2024, 1, 1),
			end:       date(2024, 3, 31),
			wantCalls: 1,
			verify: func(t *testing.T, symbol string, start, end time.Time) {
				assert.Equal(t, "AAPL", symbol)
				assert.Equal(t, date(2024, 1, 1), start)
				assert.Equal(t, date(2024, 3, 31), end)
			},
		},
		{
			name:      "missing start defaults to lookback window",
			symbol:    " msft ",
			end:       date(2024, 12, 31),
			wantCalls: 1,
			verify: func(t *testing.T, symbol string, start, end time.Time) {
				assert.Equal(t, "MSFT", symbol)
				assert.Equal(t, date(2024, 12, 31).AddDate(0, 0, -usecase.DefaultLookbackDays), start)
			},
		},
		{
			name:    "inverted range is a configuration error",
			symbol:  "AAPL",
			start:   date(2024, 5, 1),
			end:     date(2024, 4, 1),
			wantErr: apperr.ErrConfiguration,
		},
		{
			name:      "repository error is propagated",
			symbol:    "AAPL",
			start:     date(2024, 1, 1),
			end:       date(2024, 1, 2),
			repoErr:   ErrDB,
			wantErr:   ErrDB,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockCandleRepository{
				FindRangeFunc: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
					if tt.verify != nil {
						tt.verify(t, symbol, start, end)
					}
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return []entity.Candle{{Symbol: symbol, Date: start, Close: 1}}, nil
				},
			}

			uc := usecase.NewCandlesUsecase(repo)
			got, err := uc.GetCandles(context.Background(), tt.symbol, tt.start, tt.end)

			assert.Equal(t, tt.wantCalls, repo.FindRangeCalls)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestResolveRange_DefaultsEndToToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 14, 22, 30, 0, 0, time.UTC)
	start, end, err := usecase.ResolveRange(time.Time{}, time.Time{}, now)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 6, 14), end)
	assert.Equal(t, date(2023, 6, 15), start)
}
