// Package usecase implements the business logic for instrument registration and lookup.
package usecase

import (
	"context"
	"errors"
	"strings"

	"quant_backend/internal/feature/instruments/domain/entity"
	"quant_backend/internal/shared/apperr"
)

// InstrumentRepository abstracts the persistence layer for instruments.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InstrumentRepository interface {
	Upsert(ctx context.Context, in *entity.Instrument) error
	FindBySymbol(ctx context.Context, symbol string) (entity.Instrument, error)
	ListActive(ctx context.Context) ([]entity.Instrument, error)
}

// RegisterInput carries the attributes of an instrument to create or refresh.
type RegisterInput struct {
	Symbol      string
	Market      entity.Market
	Name        string
	Category    string
	TradingRule string
	SortKey     int
}

// InstrumentUsecase provides business logic for instrument operations.
type InstrumentUsecase struct {
	repo InstrumentRepository
}

// NewInstrumentUsecase creates a new InstrumentUsecase with the given repository.
func NewInstrumentUsecase(r InstrumentRepository) *InstrumentUsecase {
	return &InstrumentUsecase{repo: r}
}

// NormalizeSymbol trims and upper-cases a ticker so lookups are case-insensitive.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Register creates the instrument or refreshes its mutable attributes.
// Re-registering a symbol under a different market is rejected.
func (u *InstrumentUsecase) Register(ctx context.Context, in RegisterInput) (entity.Instrument, error) {
	symbol := NormalizeSymbol(in.Symbol)
	if symbol == "" {
		return entity.Instrument{}, apperr.Configf("symbol is required")
	}
	market, err := entity.ParseMarket(string(in.Market))
	if err != nil {
		return entity.Instrument{}, err
	}

	existing, err := u.repo.FindBySymbol(ctx, symbol)
	switch {
	case err == nil && existing.Market != market:
		return entity.Instrument{}, apperr.Configf("instrument %s is registered in market %s, not %s", symbol, existing.Market, market)
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return entity.Instrument{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = symbol
	}
	rule := in.TradingRule
	if rule == "" {
		rule = entity.TradingRuleT1
	}

	m := &entity.Instrument{
		Symbol:      symbol,
		Market:      market,
		Name:        name,
		Category:    in.Category,
		TradingRule: rule,
		IsActive:    true,
		SortKey:     in.SortKey,
	}
	if err := u.repo.Upsert(ctx, m); err != nil {
		return entity.Instrument{}, err
	}
	return u.repo.FindBySymbol(ctx, symbol)
}

// Get returns the instrument for symbol or an apperr.ErrNotFound error.
func (u *InstrumentUsecase) Get(ctx context.Context, symbol string) (entity.Instrument, error) {
	return u.repo.FindBySymbol(ctx, NormalizeSymbol(symbol))
}

// ListActiveInstruments returns all active instruments from the repository.
func (u *InstrumentUsecase) ListActiveInstruments(ctx context.Context) ([]entity.Instrument, error) {
	return u.repo.ListActive(ctx)
}
