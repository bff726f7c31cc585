package di

import (
	"context"
	"errors"
	"log/slog"

	"quant_backend/internal/app/router"
	backtesthandler "quant_backend/internal/feature/backtest/transport/handler"
	backtestusecase "quant_backend/internal/feature/backtest/usecase"
	candleadapters "quant_backend/internal/feature/candles/adapters"
	candlehandler "quant_backend/internal/feature/candles/transport/handler"
	candleusecase "quant_backend/internal/feature/candles/usecase"
	indicatorhandler "quant_backend/internal/feature/indicators/transport/handler"
	indicatorusecase "quant_backend/internal/feature/indicators/usecase"
	instrumentadapters "quant_backend/internal/feature/instruments/adapters"
	instrumenthandler "quant_backend/internal/feature/instruments/transport/handler"
	instrumentusecase "quant_backend/internal/feature/instruments/usecase"
	"quant_backend/internal/platform/cache"
	infradb "quant_backend/internal/platform/db"
	"quant_backend/internal/platform/http/handler"
	infraredis "quant_backend/internal/platform/redis"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container は server と quantctl が共有するコンポーネント一式です。
type Container struct {
	DB    *gorm.DB
	Redis *redisv9.Client // nil のときキャッシュなし

	Store       candleusecase.CandleRepository // キャッシュ付きの日足ストア
	Instruments *instrumentusecase.InstrumentUsecase
	Candles     candlehandler.CandlesUsecase
	Indicators  *indicatorusecase.IndicatorsUsecase
	Backtests   *backtestusecase.BacktestUsecase
	Sync        *candleusecase.SyncUsecase
}

// NewContainer は環境変数の設定からDB・Redis・各ユースケースを組み立てます。
// Redis に接続できない場合はキャッシュなしで続行します。
func NewContainer(ctx context.Context) (*Container, error) {
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		return nil, err
	}

	rcfg := infraredis.LoadConfig()
	rdb, err := infraredis.NewRedisClient(ctx, rcfg)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
		rdb = nil
	}

	return Wire(db, rdb, rcfg), nil
}

// Wire は開いた接続からユースケースを組み立てます。rdb は nil でも構いません。
func Wire(db *gorm.DB, rdb *redisv9.Client, rcfg infraredis.Config) *Container {
	instrumentRepo := instrumentadapters.NewInstrumentRepository(db)
	candleRepo := cache.NewCachingCandleRepository(rdb, rcfg.TTL, candleadapters.NewCandleRepository(db), "candles")

	instrumentUC := instrumentusecase.NewInstrumentUsecase(instrumentRepo)

	return &Container{
		DB:          db,
		Redis:       rdb,
		Store:       candleRepo,
		Instruments: instrumentUC,
		Candles:     candleusecase.NewCandlesUsecase(candleRepo),
		Indicators:  indicatorusecase.NewIndicatorsUsecase(candleRepo, instrumentUC, nil),
		Backtests:   backtestusecase.NewBacktestUsecase(candleRepo, instrumentUC, nil),
		Sync:        candleusecase.NewSyncUsecase(NewProvider, candleRepo, instrumentUC),
	}
}

// PingDB はDBの疎通を確認します。
func (c *Container) PingDB(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// HealthChecks は /healthz で確認する依存先を返します。Redis はキャッシュ有効時のみ含めます。
func (c *Container) HealthChecks() map[string]handler.Check {
	checks := map[string]handler.Check{"db": c.PingDB}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }
	}
	return checks
}

// Handlers はHTTPハンドラーを組み立てます。
func (c *Container) Handlers() router.Handlers {
	return router.Handlers{
		Health:      handler.Health(c.HealthChecks()),
		Instruments: instrumenthandler.NewInstrumentHandler(c.Instruments),
		Candles:     candlehandler.NewCandlesHandler(c.Candles),
		Indicators:  indicatorhandler.NewIndicatorHandler(c.Indicators),
		Backtests:   backtesthandler.NewBacktestHandler(c.Backtests),
	}
}

// Close は保持している接続を閉じます。
func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if sqlDB, err := c.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}
