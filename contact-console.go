package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contact-console/internal/config"
	"gitlab.com/dirk.krummacker/contact-console/internal/service"
)

// main starts a self-contained demo of the contact console: an SQLite database in memory, filled
// with the built-in seed data, served on localhost:8080.
//
// Usage example:
// > go run contact-console.go
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	router, closeDemo, err := setupDemo(context.Background(), logger)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer closeDemo()
	if err := router.Run("localhost:8080"); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}

// setupDemo creates the in-memory database, enters the initial data and returns the router. The
// returned function closes the database.
func setupDemo(ctx context.Context, logger *zap.Logger) (*gin.Engine, func(), error) {
	repos, err := service.OpenRepositories(ctx, config.DatabaseConfig{
		Storage:    config.StorageSQLite,
		SQLitePath: ":memory:",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := service.Seed(ctx, config.SeedConfig{Enabled: true}, repos, logger); err != nil {
		repos.Close()
		return nil, nil, err
	}
	c, err := service.NewConsole(ctx, repos, logger)
	if err != nil {
		repos.Close()
		return nil, nil, err
	}
	closeDemo := func() {
		if err := repos.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}
	return service.SetupHttpRouter(c, logger, true), closeDemo, nil
}
