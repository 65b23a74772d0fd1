// Package router はアプリケーションのginルーターを組み立てます。
package router

import (
	"log/slog"
	"os"
	"strings"
	"time"

	etfhandler "etf_catalog/internal/feature/etfcatalog/transport/handler"
	"etf_catalog/internal/platform/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Config はルーター設定です。
type Config struct {
	// AllowedOrigins はCORSで許可するオリジンです。空なら全オリジンを許可します。
	AllowedOrigins []string
}

// LoadConfig は環境変数CORS_ALLOWED_ORIGINS（カンマ区切り）を読み込みます。
func LoadConfig() Config {
	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return Config{AllowedOrigins: origins}
}

func NewRouter(cfg Config, etf *etfhandler.ETFHandler, health gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(slog.Default()))
	r.Use(corsMiddleware(cfg))

	// 導通確認用
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	api := r.Group("/api")
	{
		api.GET("/etfs", etf.List)
		api.GET("/etfs.csv", etf.ExportCSV)
		api.GET("/etfs/:ticker", etf.Get)
		api.GET("/compare", etf.Compare)
		api.GET("/meta/issuers", etf.Issuers)
		api.GET("/meta/categories", etf.Categories)
	}

	return r
}

func corsMiddleware(cfg Config) gin.HandlerFunc {
	if len(cfg.AllowedOrigins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	})
}
