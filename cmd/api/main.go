// Package main starts the job portal API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/auth"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/config"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/server"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/storage"
)

// @title Job Portal API
// @version 1.0
// @description Backend for a job board: accounts, job postings, applications and administration.
func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("database failed to initialize", "error", err)
		os.Exit(1)
	}

	store := storage.NewLocalStore(cfg.Storage.UploadDir)

	var blacklist auth.JwtBlacklistStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		blacklist = auth.NewRedisBlacklistStore(client)
		logger.Info("token blacklist backed by redis", "addr", cfg.Redis.Addr)
	} else {
		blacklist = auth.NewInMemoryBlacklistStore()
		logger.Info("token blacklist kept in memory")
	}

	tokens := auth.NewTokenService(cfg.JWT)

	srv := server.New(cfg, db, tokens, store, blacklist, logger)
	httpServer := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()
	logger.Info("api listening", "addr", httpServer.Addr)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}
