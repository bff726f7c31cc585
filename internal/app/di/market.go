// Package di provides dependency injection factories for creating application components.
package di

import (
	candleusecase "quant_backend/internal/feature/candles/usecase"
	"quant_backend/internal/feature/instruments/domain/entity"
	"quant_backend/internal/platform/externalapi/eastmoney"
	"quant_backend/internal/platform/externalapi/twelvedata"
	infrahttp "quant_backend/internal/platform/http"
	"quant_backend/internal/shared/apperr"
)

var _ candleusecase.ProviderFactory = NewProvider

// NewProvider returns the configured provider for market.
// The Twelve Data provider needs TWELVE_DATA_API_KEY.
func NewProvider(market entity.Market) (candleusecase.MarketProvider, error) {
	switch market {
	case entity.MarketUS:
		cfg := twelvedata.LoadConfig()
		if cfg.TwelveDataAPIKey == "" {
			return nil, apperr.Configf("TWELVE_DATA_API_KEY is required for market %s", market)
		}
		return twelvedata.NewTwelveDataMarket(cfg, infrahttp.NewHTTPClient(cfg.Timeout)), nil
	case entity.MarketCN:
		cfg := eastmoney.LoadConfig()
		return eastmoney.NewEastmoneyMarket(cfg, infrahttp.NewHTTPClient(cfg.Timeout)), nil
	default:
		return nil, apperr.Configf("no provider for market %q", market)
	}
}
