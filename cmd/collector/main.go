package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/helmguard/centralsync/pkg/collector"
	"github.com/helmguard/centralsync/pkg/config"
	"github.com/helmguard/centralsync/pkg/logger"
)

func main() {
	configPath := flag.String("config", "/etc/centralsync/collector.json", "Path to config file")
	once := flag.String("once", "", "Run a single cycle and exit: endpoints, events, or all")
	flag.Parse()

	ctx := context.Background()
	cfgLoader := config.NewConfig()

	var cfg collector.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zlog := logger.GetLogger()

	svc, err := collector.New(ctx, &cfg, zlog)
	if err != nil {
		log.Fatalf("Failed to create collector: %v", err)
	}

	if *once != "" {
		runOnce(ctx, svc, *once)

		_ = svc.Stop(ctx)

		return
	}

	if err := svc.Start(ctx); err != nil {
		log.Fatalf("Failed to start collector: %v", err)
	}

	zlog.Info().Msg("Collector started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zlog.Info().Msg("Shutting down")

	if err := svc.Stop(ctx); err != nil {
		zlog.Error().Err(err).Msg("Error during shutdown")
	}
}

func runOnce(ctx context.Context, svc *collector.Service, what string) {
	zlog := logger.GetLogger()

	if what == "endpoints" || what == "all" {
		result := svc.SyncEndpointsNow(ctx)
		zlog.Info().Interface("result", result).Msg("Endpoint cycle finished")
	}

	if what == "events" || what == "all" {
		result := svc.SyncEventsNow(ctx)
		zlog.Info().Interface("result", result).Msg("Event cycle finished")
	}
}
