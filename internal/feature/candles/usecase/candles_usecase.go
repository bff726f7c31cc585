// Package usecase はローソク足データ操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"strings"
	"time"

	"quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/shared/apperr"
)

// DefaultLookbackDays は開始日が未指定の場合に遡る日数です。
const DefaultLookbackDays = 365

// CandleRepository はローソク足データの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleRepository interface {
	// UpsertBatch は (symbol, date) をキーにローソク足を挿入または更新します。
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
	// FindRange は [start, end] のローソク足を日付の昇順で返します。
	FindRange(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error)
}

// candlesUsecase はローソク足データ操作のユースケースを定義します。
type candlesUsecase struct {
	candle CandleRepository
	now    func() time.Time
}

// NewCandlesUsecase はcandlesUsecaseの新しいインスタンスを生成します。
func NewCandlesUsecase(candle CandleRepository) *candlesUsecase {
	return &candlesUsecase{candle: candle, now: time.Now}
}

// GetCandles は指定された銘柄の [start, end] の日足を返します。
// end が未指定の場合は今日、start が未指定の場合は end から DefaultLookbackDays 日前を使用します。
func (cu *candlesUsecase) GetCandles(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
	start, end, err := ResolveRange(start, end, cu.now())
	if err != nil {
		return nil, err
	}
	return cu.candle.FindRange(ctx, strings.ToUpper(strings.TrimSpace(symbol)), start, end)
}

// ResolveRange fills zero bounds relative to now and rejects inverted ranges.
func ResolveRange(start, end, now time.Time) (time.Time, time.Time, error) {
	if end.IsZero() {
		end = now
	}
	end = entity.NormalizeDate(end)
	if start.IsZero() {
		start = end.AddDate(0, 0, -DefaultLookbackDays)
	}
	start = entity.NormalizeDate(start)
	if start.After(end) {
		return time.Time{}, time.Time{}, apperr.Configf("start date %s is after end date %s",
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return start, end, nil
}
