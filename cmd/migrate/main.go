// Command migrate runs the structural phase migration once over all
// contracts and prints the per-run summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JLTC3111/contract-management-app-sub001/config"
	"github.com/JLTC3111/contract-management-app-sub001/pkg/logger"
	"github.com/JLTC3111/contract-management-app-sub001/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	if cfg.Database.URL == "" {
		slog.Error("database.url must be configured for a migration run")
		os.Exit(1)
	}

	store, err := service.NewPostgresStore(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to initialize postgres store", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := service.NewMigrator(store).MigrateAll(ctx)
	if err != nil {
		slog.Error("migration aborted", "error", err)
		os.Exit(1)
	}

	fmt.Printf("migration finished: updated=%d skipped=%d errors=%d\n",
		summary.UpdatedCount, summary.SkippedCount, summary.ErrorCount)

	if summary.ErrorCount > 0 {
		os.Exit(1)
	}
}
