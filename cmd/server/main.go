package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"etf_catalog/internal/app/di"
	"etf_catalog/internal/app/router"
	"etf_catalog/internal/platform/cache"
	infradb "etf_catalog/internal/platform/db"
	"etf_catalog/internal/platform/http/handler"
	infraredis "etf_catalog/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	dbCfg := infradb.LoadConfigFromEnv()
	db, err := infradb.OpenDB(dbCfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Println("[ERROR] Failed to close database:", err)
		}
	}()
	slog.Info("database ready", "driver", dbCfg.Driver, "migrated", dbCfg.Migrate)

	// Redis
	var rdb *redisv9.Client
	redisCfg := infraredis.LoadConfigFromEnv()
	if !redisCfg.Enabled() {
		log.Println("[WARN] REDIS_HOST is not set. Running without cache.")
	} else if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository（Redisがあればファセットをキャッシュでラップ）
	facets := di.NewFacetRepository(rdb, db, cache.FacetTTLFromEnv())
	if c, ok := facets.(*cache.CachingFacetRepository); ok && dbCfg.Migrate {
		// スキーマ更新後は古いファセット一覧を残さない
		if err := c.Invalidate(ctx); err != nil {
			log.Println("[WARN] Failed to invalidate facet cache:", err)
		}
	}

	// Handler
	etfH := di.NewETFHandler(db, facets)

	// ルータ生成
	r := router.NewRouter(router.LoadConfig(), etfH, handler.Health(sqlDB))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println("[ERROR] Graceful shutdown failed:", err)
		}
	}()

	slog.Info("listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
