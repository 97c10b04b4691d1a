package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/uomtools/sisgate/internal/config"
	"github.com/uomtools/sisgate/internal/logging"
	"github.com/uomtools/sisgate/internal/portal"
	"github.com/uomtools/sisgate/internal/server"
	"github.com/uomtools/sisgate/internal/settings"
	"github.com/uomtools/sisgate/internal/shared/paths"
)

func main() {
	cfg := config.LoadOrDefault()

	port := flag.String("port", cfg.Server.Port, "Listen port")
	host := flag.String("host", cfg.Server.Host, "Listen host")
	dataDir := flag.String("data-dir", cfg.Portal.DataDir, "State directory (session, settings)")
	flag.Parse()
	cfg.Server.Port = *port
	cfg.Server.Host = *host
	cfg.Portal.DataDir = *dataDir

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	dir, err := paths.DataDir(cfg.Portal.DataDir)
	if err != nil {
		logger.Fatal("data dir", zap.Error(err))
	}

	sessionStore := portal.NewStore(paths.SessionFile(dir))
	manager := portal.NewManager(portal.Config{
		Timeout:           cfg.Portal.HTTPTimeout,
		RequestsPerSecond: cfg.Portal.RequestsPerSecond,
	}, sessionStore, logger)
	settingsStore := settings.NewStore(paths.SettingsFile(dir), logger)

	srv := server.New(cfg, manager, settingsStore, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server", zap.Error(err))
		}
	}
}
