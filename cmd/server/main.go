// @title        Bizhub ERP API
// @version      1.0
// @description  Backend for the Bizhub business-management dashboard:
// @description  auth, notifications, chat, finance widget, AI summaries,
// @description  and a websocket channel for real-time updates.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bizhub/erp-system/internal/api"
	"github.com/bizhub/erp-system/internal/infrastructure/config"
	mongodb "github.com/bizhub/erp-system/internal/infrastructure/db/mongo"
	redisdb "github.com/bizhub/erp-system/internal/infrastructure/db/redis"
	"github.com/bizhub/erp-system/internal/infrastructure/llm"
	"github.com/bizhub/erp-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "erp-api",
		Pretty:  cfg.Env == "development",
	})

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	for _, idx := range []interface{ EnsureIndexes(context.Context) error }{
		mongodb.NewAuthRepository(db),
		mongodb.NewNotificationRepository(db),
		mongodb.NewMessageRepository(db),
		mongodb.NewFinanceRepository(db),
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("index creation failed")
		}
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Gemini ---
	generator, err := llm.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini client failed")
	}

	e, _ := api.NewRouter(api.Dependencies{
		DB:        db,
		Redis:     rdb,
		Generator: generator,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
