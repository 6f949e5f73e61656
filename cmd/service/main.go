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

	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contact-console/internal/config"
	"gitlab.com/dirk.krummacker/contact-console/internal/logging"
	"gitlab.com/dirk.krummacker/contact-console/internal/service"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// Usage example on the command line:
// > PORT=8080 STORAGE=mysql DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("service failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	logger.Info("opening storage", zap.String("storage", cfg.Database.Storage))
	repos, err := service.OpenRepositories(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Error("error closing storage", zap.Error(err))
		}
	}()
	if err := service.Seed(ctx, cfg.Seed, repos, logger); err != nil {
		return err
	}
	c, err := service.NewConsole(ctx, repos, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      service.SetupHttpRouter(c, logger, cfg.App.GinLogging),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     zap.NewStdLog(logger.Named("http")),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", httpServer.Addr))
		serverErrors <- httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.App.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			httpServer.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server stopped")
		return nil
	}
}
