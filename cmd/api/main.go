package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	"github.com/BruksfildServices01/barber-booking/internal/ratelimit"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database setup failed", zap.Error(err))
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := dbpkg.EnsureOwner(bootCtx, db, cfg, log); err != nil {
		cancelBoot()
		log.Fatal("owner bootstrap failed", zap.Error(err))
	}
	cancelBoot()

	dispatcher := audit.NewDispatcher(audit.New(log), log)

	deps := routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    log,
		Audit:  dispatcher,
	}

	var memLimiter *ratelimit.MemoryLimiter
	if cfg.RedisAddr != "" {
		rdb := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		defer rdb.Close()
		deps.LoginLimiter = ratelimit.NewRedisLimiter(rdb, "login", cfg.LoginRateLimit, cfg.LoginRateWindow)
	} else {
		memLimiter = ratelimit.NewMemoryLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
		deps.LoginLimiter = memLimiter
	}

	if cfg.PhotoStorageEnabled() {
		deps.Photos = media.NewS3Store(cfg)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := routes.NewEngine(cfg)
	if err != nil {
		log.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	dispatcher.Close()
	if memLimiter != nil {
		memLimiter.Close()
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("error closing database connection", zap.Error(err))
		}
	}

	log.Info("server exited")
}
