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

	"github.com/jonboulle/clockwork"

	"github.com/emilythestrangee/breadit/backend/internal/cache"
	"github.com/emilythestrangee/breadit/backend/internal/config"
	"github.com/emilythestrangee/breadit/backend/internal/database"
	"github.com/emilythestrangee/breadit/backend/internal/handlers"
	"github.com/emilythestrangee/breadit/backend/internal/logging"
	"github.com/emilythestrangee/breadit/backend/internal/metrics"
	"github.com/emilythestrangee/breadit/backend/internal/server"
	"github.com/emilythestrangee/breadit/backend/internal/votes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	rdb, err := cache.NewClient(ctx, cfg.RedisURL)
	cancel()
	if err != nil {
		slog.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	registry := metrics.NewRegistry()
	postCache := cache.NewPostCache(rdb, metrics.NewCacheMetrics(registry))

	gormDB := db.GetDB()
	voteService := votes.NewService(
		votes.NewStore(gormDB),
		votes.NewPostRepo(gormDB),
		postCache,
		cfg.CacheAfterVotes,
		clockwork.NewRealClock(),
		metrics.NewVoteMetrics(registry),
		logger,
	)

	handler := handlers.New(gormDB, voteService, postCache, []byte(cfg.JWTSecret))
	srv := server.New(cfg, db, handler, registry)

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Server stopped")
}

func runGracefulShutdown(srv *http.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}
