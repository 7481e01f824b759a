package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/flow-bank/internal/client"
	"github.com/MKhiriev/flow-bank/internal/config"
	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/internal/service"
	"github.com/MKhiriev/flow-bank/internal/store"
	"github.com/MKhiriev/flow-bank/internal/tui"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("flow-bank-client", "")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	clock := utils.NewRealClock()

	storages, err := store.NewStorages(ctx, cfg.Storage, clock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, *cfg, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("create services")
	}

	ui, err := tui.New(services, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
