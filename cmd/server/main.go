package main

import (
	"context"
	"fmt"

	"github.com/medward/medward/internal/config"
	handlerhttp "github.com/medward/medward/internal/handler/http"
	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/mailer"
	"github.com/medward/medward/internal/server"
	"github.com/medward/medward/internal/service"
	"github.com/medward/medward/internal/store"
	"github.com/medward/medward/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("medward-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	notifier := mailer.NewRelayNotifier(cfg.Mailer, log)
	services := service.NewServices(storages, notifier, *cfg, log)
	handler := handlerhttp.NewHandler(services, storages, log)

	if cfg.Workers.TokenRetentionInterval > 0 {
		retention := workers.NewRetentionWorker(storages.CredentialRepository, cfg.Workers, log)
		defer retention.Stop()

		workers.NewWorkers(retention).Run()
	}

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
