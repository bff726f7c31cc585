// Package adapters はinstrumentsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"quant_backend/internal/feature/instruments/domain/entity"
	"quant_backend/internal/feature/instruments/usecase"
	"quant_backend/internal/shared/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// instrumentGorm はInstrumentRepositoryインターフェースのGORM実装です。
type instrumentGorm struct {
	db *gorm.DB
}

var _ usecase.InstrumentRepository = (*instrumentGorm)(nil)

// NewInstrumentRepository は指定されたDB接続でinstrumentGormリポジトリの新しいインスタンスを生成します。
func NewInstrumentRepository(db *gorm.DB) *instrumentGorm {
	return &instrumentGorm{db: db}
}

// Upsert はsymbolをキーに銘柄を登録し、既存の場合は可変な属性のみを更新します。
// market は更新対象に含めません。
func (r *instrumentGorm) Upsert(ctx context.Context, in *entity.Instrument) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "category", "trading_rule", "is_active", "sort_key", "updated_at"}),
	}).Create(in).Error
}

// FindBySymbol はsymbolに一致する銘柄を返します。存在しない場合は apperr.ErrNotFound を返します。
func (r *instrumentGorm) FindBySymbol(ctx context.Context, symbol string) (entity.Instrument, error) {
	var in entity.Instrument
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&in).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Instrument{}, apperr.NotFoundf("instrument %q", symbol)
	}
	if err != nil {
		return entity.Instrument{}, err
	}
	return in, nil
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *instrumentGorm) ListActive(ctx context.Context) ([]entity.Instrument, error) {
	var instruments []entity.Instrument
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("symbol ASC").
		Find(&instruments).Error; err != nil {
		return nil, err
	}
	return instruments, nil
}
