// Package adapters はcandlesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/feature/candles/usecase"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type candleGorm struct {
	db *gorm.DB
}

var _ usecase.CandleRepository = (*candleGorm)(nil)

func NewCandleRepository(db *gorm.DB) *candleGorm {
	return &candleGorm{db: db}
}

// CandleModel は日足1本を保存するテーブル行です。価格は decimal(12,4) で保持します。
type CandleModel struct {
	ID     uint      `gorm:"primaryKey"`
	Symbol string    `gorm:"size:20;not null;uniqueIndex:candle_sym_date,priority:1"`
	Date   time.Time `gorm:"column:trade_date;type:date;not null;uniqueIndex:candle_sym_date,priority:2"`

	Open     decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	High     decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Low      decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Close    decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Volume   int64           `gorm:"not null;default:0"`
	Amount   null.Float64
	Turnover null.Float64
}

func (CandleModel) TableName() string {
	return "candles"
}

func toModel(e entity.Candle) CandleModel {
	return CandleModel{
		Symbol:   e.Symbol,
		Date:     entity.NormalizeDate(e.Date),
		Open:     decimal.NewFromFloat(e.Open),
		High:     decimal.NewFromFloat(e.High),
		Low:      decimal.NewFromFloat(e.Low),
		Close:    decimal.NewFromFloat(e.Close),
		Volume:   e.Volume,
		Amount:   e.Amount,
		Turnover: e.Turnover,
	}
}

func toEntity(m CandleModel) entity.Candle {
	return entity.Candle{
		Symbol:   m.Symbol,
		Date:     entity.NormalizeDate(m.Date),
		Open:     m.Open.InexactFloat64(),
		High:     m.High.InexactFloat64(),
		Low:      m.Low.InexactFloat64(),
		Close:    m.Close.InexactFloat64(),
		Volume:   m.Volume,
		Amount:   m.Amount,
		Turnover: m.Turnover,
	}
}

// UpsertBatch は (symbol, trade_date) をキーに一括で挿入または更新します。
// 同じ取得結果を繰り返し保存しても行は増えず、最新の値で上書きされます。
func (r *candleGorm) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	ms := make([]CandleModel, 0, len(candles))
	for _, e := range candles {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "trade_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume", "amount", "turnover"}),
	}).CreateInBatches(&ms, 500).Error
}

// FindRange は [start, end] の日足を日付の昇順で返します。ゼロ値の境界は無制限として扱います。
func (r *candleGorm) FindRange(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
	q := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("trade_date ASC")
	if !start.IsZero() {
		q = q.Where("trade_date >= ?", entity.NormalizeDate(start))
	}
	if !end.IsZero() {
		q = q.Where("trade_date <= ?", entity.NormalizeDate(end))
	}

	var rows []CandleModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Candle, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
