package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"quant_backend/internal/feature/candles/domain/entity"
	instrumententity "quant_backend/internal/feature/instruments/domain/entity"
	instrumentusecase "quant_backend/internal/feature/instruments/usecase"
	"quant_backend/internal/shared/apperr"
	"quant_backend/internal/shared/ratelimiter"
)

const (
	// DefaultBatchDays はバッチ同期で遡るデフォルトの日数です。
	DefaultBatchDays = 7
	// DefaultBatchDelay はリクエスト間のデフォルトの待機時間です。
	DefaultBatchDelay = 2 * time.Second
	// rateLimitBackoffFactor はスロットリング時に delay に掛ける最小の倍率です。
	rateLimitBackoffFactor = 4
)

// MarketProvider は外部ソースから日足を取得するインターフェースです。
// 実装はリトライを行わず、待機とリトライは呼び出し側（SyncUsecase）が担います。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketProvider interface {
	FetchHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error)
}

// ProviderFactory は市場に対応するMarketProviderを返します。
type ProviderFactory func(market instrumententity.Market) (MarketProvider, error)

// InstrumentRegistrar は同期対象の銘柄を登録（または更新）します。
type InstrumentRegistrar interface {
	Register(ctx context.Context, in instrumentusecase.RegisterInput) (instrumententity.Instrument, error)
}

// BatchType はバッチ同期の対象ユニバースを選択します。
type BatchType string

const (
	BatchETF      BatchType = "etf"
	BatchUSStocks BatchType = "us_stocks"
	BatchAll      BatchType = "all"
)

// ParseBatchType は文字列をBatchTypeに変換します。
func ParseBatchType(s string) (BatchType, error) {
	switch t := BatchType(s); t {
	case BatchETF, BatchUSStocks, BatchAll:
		return t, nil
	default:
		return "", apperr.Configf("unknown batch type %q (want etf, us_stocks or all)", s)
	}
}

// BatchRequest はバッチ同期の入力です。
type BatchRequest struct {
	Type  BatchType
	Days  int           // 0 のとき DefaultBatchDays
	Delay time.Duration // 0 のとき DefaultBatchDelay。US銘柄はこの2倍待機します
}

// SymbolResult は1銘柄分の同期結果です。Err が nil なら成功です。
type SymbolResult struct {
	Symbol string
	Market instrumententity.Market
	Name   string
	Rows   int
	Err    error
}

// BatchSummary はバッチ同期の銘柄ごとの結果をまとめたものです。
type BatchSummary struct {
	Start   time.Time
	End     time.Time
	Results []SymbolResult
}

// Succeeded は成功した銘柄数を返します。
func (s BatchSummary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Errors は失敗した銘柄とそのエラーの対応を返します。
func (s BatchSummary) Errors() map[string]error {
	out := map[string]error{}
	for _, r := range s.Results {
		if r.Err != nil {
			out[r.Symbol] = r.Err
		}
	}
	return out
}

// SyncUsecase は外部ソースから日足を取得し、データベースに永続化するユースケースを定義します。
type SyncUsecase struct {
	providers   ProviderFactory
	candle      CandleRepository
	instruments InstrumentRegistrar

	newLimiter func(interval time.Duration) ratelimiter.RateLimiterInterface
	sleep      func(ctx context.Context, d time.Duration) error
	now        func() time.Time
}

// NewSyncUsecase は新しい SyncUsecase を作成します。
func NewSyncUsecase(providers ProviderFactory, candle CandleRepository, instruments InstrumentRegistrar) *SyncUsecase {
	return &SyncUsecase{
		providers:   providers,
		candle:      candle,
		instruments: instruments,
		newLimiter: func(interval time.Duration) ratelimiter.RateLimiterInterface {
			return ratelimiter.NewRateLimiter(1, interval)
		},
		sleep: sleepContext,
		now:   time.Now,
	}
}

// SyncOne は銘柄の [start, end] の日足を市場に対応するプロバイダーから取得し、一括で保存します。
// 保存した行数を返します。
func (u *SyncUsecase) SyncOne(ctx context.Context, in instrumententity.Instrument, start, end time.Time) (int, error) {
	start, end = entity.NormalizeDate(start), entity.NormalizeDate(end)
	if start.After(end) {
		return 0, apperr.Configf("start date %s is after end date %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	provider, err := u.providers(in.Market)
	if err != nil {
		return 0, err
	}

	cs, err := provider.FetchHistory(ctx, in.Symbol, start, end)
	if err != nil {
		return 0, fmt.Errorf("sync %s: %w", in.Symbol, err)
	}

	// 取得したデータに銘柄コードを設定
	for i := range cs {
		cs[i].Symbol = in.Symbol
	}
	if err := u.candle.UpsertBatch(ctx, cs); err != nil {
		return 0, fmt.Errorf("save %s: %w", in.Symbol, err)
	}

	slog.Info("synced candles", "symbol", in.Symbol, "market", in.Market, "rows", len(cs),
		"start", start.Format(time.DateOnly), "end", end.Format(time.DateOnly))
	return len(cs), nil
}

// SyncBatch は組み込みユニバースの全銘柄を順に同期します。
// 1銘柄の失敗でバッチは止まらず、結果は銘柄ごとに BatchSummary に記録されます。
// エラーを返すのは入力が不正な場合と ctx がキャンセルされた場合のみです。
func (u *SyncUsecase) SyncBatch(ctx context.Context, req BatchRequest) (BatchSummary, error) {
	if _, err := ParseBatchType(string(req.Type)); err != nil {
		return BatchSummary{}, err
	}
	if req.Days < 0 || req.Delay < 0 {
		return BatchSummary{}, apperr.Configf("days and delay must not be negative")
	}
	if req.Days == 0 {
		req.Days = DefaultBatchDays
	}
	if req.Delay == 0 {
		req.Delay = DefaultBatchDelay
	}

	end := entity.NormalizeDate(u.now())
	summary := BatchSummary{Start: end.AddDate(0, 0, -req.Days), End: end}

	var targets []UniverseEntry
	if req.Type == BatchETF || req.Type == BatchAll {
		targets = append(targets, CNETFs...)
	}
	if req.Type == BatchUSStocks || req.Type == BatchAll {
		targets = append(targets, USStocks...)
	}

	// 全銘柄で1つのリミッターを共有し、市場が切り替わる境目でも delay 以上空ける
	limiter := u.newLimiter(req.Delay)

	for i, e := range targets {
		if err := u.wait(ctx, limiter, e.Market); err != nil {
			return summary, err
		}

		res := SymbolResult{Symbol: e.Symbol, Market: e.Market, Name: e.Name}
		res.Rows, res.Err = u.syncEntry(ctx, e, i, summary.Start, summary.End, req.Delay)
		if res.Err != nil {
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の銘柄へ
			slog.Error("failed to sync instrument", "symbol", e.Symbol, "market", e.Market, "error", res.Err)
		}
		summary.Results = append(summary.Results, res)

		if err := ctx.Err(); err != nil {
			return summary, err
		}
	}

	slog.Info("batch sync finished", "type", req.Type, "total", len(summary.Results),
		"succeeded", summary.Succeeded(), "failed", len(summary.Results)-summary.Succeeded())
	return summary, nil
}

// wait はリミッターのトークンを取得します。US銘柄は2つ取得するため delay の2倍待機します。
func (u *SyncUsecase) wait(ctx context.Context, limiter ratelimiter.RateLimiterInterface, market instrumententity.Market) error {
	n := 1
	if market == instrumententity.MarketUS {
		n = 2
	}
	for range n {
		if err := limiter.WaitIfNeeded(ctx); err != nil {
			return err
		}
	}
	return nil
}

// syncEntry registers the instrument and syncs it, retrying once after a
// longer backoff when the provider reports throttling.
func (u *SyncUsecase) syncEntry(ctx context.Context, e UniverseEntry, sortKey int, start, end time.Time, delay time.Duration) (int, error) {
	in, err := u.instruments.Register(ctx, instrumentusecase.RegisterInput{
		Symbol:      e.Symbol,
		Market:      e.Market,
		Name:        e.Name,
		Category:    e.Category,
		TradingRule: e.TradingRule,
		SortKey:     sortKey,
	})
	if err != nil {
		return 0, err
	}

	n, err := u.SyncOne(ctx, in, start, end)
	var rle *apperr.RateLimitError
	if !errors.As(err, &rle) {
		return n, err
	}

	backoff := max(rle.RetryAfter, rateLimitBackoffFactor*delay)
	slog.Warn("rate limited, backing off", "symbol", e.Symbol, "backoff", backoff)
	if err := u.sleep(ctx, backoff); err != nil {
		return 0, err
	}
	return u.SyncOne(ctx, in, start, end)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
