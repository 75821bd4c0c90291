package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/contactpro/internal/buildinfo"
	"github.com/dmitrijs2005/contactpro/internal/cli"
	"github.com/dmitrijs2005/contactpro/internal/config"
	"github.com/dmitrijs2005/contactpro/internal/httpapi"
	"github.com/dmitrijs2005/contactpro/internal/intent"
	"github.com/dmitrijs2005/contactpro/internal/logging"
	"github.com/dmitrijs2005/contactpro/internal/services"
	"github.com/dmitrijs2005/contactpro/internal/storage"
	"github.com/dmitrijs2005/contactpro/internal/tui"
)

func main() {

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	if cfg.Mode != config.ModeTUI {
		buildinfo.PrintBuildData(os.Stdout)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("%v", err)
	}

}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, closer, err := logging.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger init error: %w", err)
	}
	defer closer.Close()

	db, err := storage.InitDatabase(ctx, cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	svc, err := services.NewContactService(ctx, storage.NewKVGateway(db.KV), logger,
		services.WithHistoryLimit(cfg.HistoryLimit))
	if err != nil {
		return fmt.Errorf("service init error: %w", err)
	}
	d := intent.NewDispatcher(svc, logger)

	logger.Info(ctx, "Starting app...", "mode", cfg.Mode, "db", cfg.DBPath)

	switch cfg.Mode {
	case config.ModeTUI:
		return tui.Run(ctx, d, cfg.ExportDir, logger)
	case config.ModeHTTP:
		return httpapi.NewServer(cfg.HTTPAddr, cfg.ShutdownTimeout, d, logger).Run(ctx)
	default:
		cli.NewApp(d, cfg.ExportDir, logger, os.Stdin, os.Stdout).Run(ctx)
		return nil
	}
}
