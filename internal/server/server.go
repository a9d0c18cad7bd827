// Package server owns the process lifecycle: connecting infrastructure,
// serving HTTP and shutting everything down in order.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/omikunle/config"
	"github.com/shashiranjanraj/omikunle/internal/kernel"
	"github.com/shashiranjanraj/omikunle/pkg/cache"
	"github.com/shashiranjanraj/omikunle/pkg/database"
	"github.com/shashiranjanraj/omikunle/pkg/logger"
	"github.com/shashiranjanraj/omikunle/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Run connects the infrastructure, serves HTTP and blocks until the process
// receives SIGINT/SIGTERM or the listener fails.
func Run(cfg *config.Config) error {
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	// Application logs are mirrored into the same database the app runs on.
	mongoLog := logger.NewMongoHandler(db.Collection("logs"))
	defer mongoLog.Close()
	logger.Setup(cfg.AppEnv, mongoLog)

	store, err := cache.Connect(cfg)
	if err != nil {
		// The cache is an accelerator, not a dependency: run without it.
		logger.Warn("redis unavailable, running without cache", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	disks, err := storage.NewManager(cfg)
	if err != nil {
		return err
	}

	k := kernel.New(cfg, kernel.Deps{DB: db, Cache: store, Storage: disks})
	defer k.Pool.Shutdown()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           k.Router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
