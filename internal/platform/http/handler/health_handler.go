// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check は依存先（DB、Redisなど）の疎通確認です。
type Check func(ctx context.Context) error

// checkTimeout は1回のヘルスチェック全体の上限です。
const checkTimeout = 2 * time.Second

// Health はサービスヘルスチェック用の /healthz エンドポイントを返します。
// いずれかのチェックが失敗した場合は 503 と失敗内容を返し、キャッシュを防止します。
func Health(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		status, body := http.StatusOK, gin.H{"status": "ok"}
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status, body["status"] = http.StatusServiceUnavailable, "degraded"
				continue
			}
			results[name] = "ok"
		}
		if len(results) > 0 {
			body["checks"] = results
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		c.JSON(status, body)
	}
}
