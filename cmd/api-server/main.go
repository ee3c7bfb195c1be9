package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"

	"github.com/SinoAHpx/appointment-dashboard-sub001/db"
	"github.com/SinoAHpx/appointment-dashboard-sub001/db/migrations"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/appointments"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/config"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/handlers"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/repository"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/scheduler"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/server"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/waste"
)

// store объединяет оба репозитория; его реализуют db.Storage и MemoryRepo
type store interface {
	repository.WasteRepository
	repository.AppointmentRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Cannot load config", map[string]any{"error": err.Error()})
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatal("Cannot configure logger", map[string]any{"error": err.Error()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Cannot open store", map[string]any{"driver": cfg.StoreDriver, "error": err.Error()})
	}
	defer closeStore()

	wasteSvc := waste.NewService(st)
	h := handlers.NewHandler(wasteSvc, appointments.NewService(st))

	if cfg.AutoCloseInterval > 0 {
		closer := scheduler.NewAuctionCloser(wasteSvc, cfg.AutoCloseInterval, cfg.RequestTimeout)
		go closer.Run(ctx)
	}

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: server.NewRouter(h, cfg.RequestTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", map[string]any{"addr": cfg.ServerAddress, "store": cfg.StoreDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", map[string]any{"error": err.Error()})
		}
	case <-ctx.Done():
		logger.Info("Shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", map[string]any{"error": err.Error()})
		}
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("Using in-memory store, data is lost on restart", nil)
		return repository.NewMemoryRepo(), func() {}, nil
	}

	conn, err := db.Connect(ctx, cfg.PostgresConn, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, nil, err
	}
	if cfg.RunMigrations {
		if err := migrations.Up(conn.DB); err != nil {
			conn.Close()
			return nil, nil, err
		}
	}
	return db.NewStorage(conn), closer(conn), nil
}

func closer(conn *sqlx.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			logger.Warn("Cannot close DB", map[string]any{"error": err.Error()})
		}
	}
}
