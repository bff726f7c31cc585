// Package ratelimiter は外部APIへのリクエスト間隔を制御します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded(ctx context.Context) error
}

// RateLimiter は interval あたり limit 回までにリクエストを平準化します。
// バーストは1に固定されるため、連続する呼び出しの間には常に interval/limit 以上の間隔が空きます。
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit または interval が0以下の場合は待機しないリミッターを返します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	every := interval / time.Duration(limit)
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(every), 1)}
}

// WaitIfNeeded は次のリクエストが許可されるまで待機します。
// ctx がキャンセルされた場合、または待機が ctx の期限を超える場合はエラーを返します。
func (rl *RateLimiter) WaitIfNeeded(ctx context.Context) error {
	start := time.Now()
	if err := rl.limiter.Wait(ctx); err != nil {
		return err
	}
	if waited := time.Since(start); waited > time.Millisecond {
		slog.Debug("rate limiter delayed request", "waited", waited)
	}
	return nil
}
