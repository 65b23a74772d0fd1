// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger はデータベースの疎通確認インターフェースです。*sql.DBが満たします。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// pingTimeout はヘルスチェック1回あたりのDB疎通確認の上限時間です。
const pingTimeout = 2 * time.Second

// Health はサービスヘルスチェック用の /healthz エンドポイントのハンドラーを返します。
// DBに到達できない場合は503を返します。pがnilの場合は疎通確認を省略します。
func Health(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status, body := http.StatusOK, "ok"
		if p != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
			defer cancel()
			if err := p.PingContext(ctx); err != nil {
				slog.Error("health check failed", "error", err)
				status, body = http.StatusServiceUnavailable, "unavailable"
			}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		c.JSON(status, gin.H{"status": body})
	}
}
