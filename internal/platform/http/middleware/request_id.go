// Package middleware はルーター全体に適用するginミドルウェアを提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを伝播するHTTPヘッダー名です。
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// maxRequestIDLen を超えるクライアント指定のIDは破棄して採番し直します。
const maxRequestIDLen = 128

// RequestID はリクエストごとのIDをコンテキストとレスポンスヘッダーに設定します。
// クライアントがX-Request-IDを送った場合はそれを引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom はRequestIDミドルウェアが設定したIDを返します。未設定なら空文字です。
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
