package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_listings/internal/adapters/observability"
	redisad "hotel_listings/internal/adapters/redis"
	"hotel_listings/internal/app"
	"hotel_listings/internal/domain"
	"hotel_listings/internal/shared"
	"hotel_listings/internal/storage/filestore"
	mysqlrepo "hotel_listings/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)

	if cfg.RedisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR is not set; nothing to warm")
	}
	log.Info().
		Str("store", cfg.StoreBackend).
		Str("redis", cfg.RedisAddr).
		Int("workers", cfg.WarmWorkers).
		Msg("cache warmer starting")

	var store domain.HotelStore
	switch cfg.StoreBackend {
	case shared.StoreMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("db ping ok")
		store = mysqlrepo.New(db)
	default:
		fs := filestore.New(cfg.DataDir)
		if err := fs.Init(); err != nil {
			log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("data directory init failed")
		}
		store = fs
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}

	rep, err := app.NewCacheWarmer(store, cache, cfg.CacheTTL, cfg.WarmWorkers).Warm(ctx)
	if err != nil {
		log.Error().Err(err).Msg("warming interrupted")
	}
	log.Info().
		Int("total", rep.Total).
		Int("warmed", rep.Warmed).
		Int("failed", rep.Failed).
		Msg("cache warming completed")
}
