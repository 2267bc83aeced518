package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/handler"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/metrics"
	"github.com/MKhiriev/go-shop/internal/server"
	"github.com/MKhiriev/go-shop/internal/service"
	"github.com/MKhiriev/go-shop/internal/store"
	"github.com/MKhiriev/go-shop/internal/workers"
	"github.com/MKhiriev/go-shop/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// openStorages is swapped in tests.
var openStorages = store.NewStorages

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("go-shop-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = log.WithEnvironment(cfg.App.Environment)

	if err = run(context.Background(), cfg, build, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

// run wires the application and serves until shutdown. Every error is
// returned so that the storage is closed before the process exits.
func run(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) error {
	storages, err := openStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if err := storages.Database.Close(ctx); err != nil {
			log.Error().Err(err).Msg("error closing storage")
		}
	}()

	services, err := service.NewServices(storages, cfg.App, build, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	m := metrics.New()

	handlers, err := handler.NewHandlers(services, m, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	reporters := []workers.StatusReporter{m}
	if handlers.GRPC != nil {
		reporters = append(reporters, handlers.GRPC)
	}
	background := workers.NewWorkers(
		workers.NewStorageProbe(storages.Database, cfg.Workers.HealthCheckInterval, log, reporters...),
	)

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	log.Info().
		Str("mode", cfg.App.Environment).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Str("driver", storages.Database.Driver()).
		Msgf("server running in %s mode on %s", cfg.App.Environment, cfg.Server.HTTPAddress)

	return srv.RunServer(ctx)
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.Version)
	fmt.Printf("Build date: %s\n", build.BuildDate)
	fmt.Printf("Build commit: %s\n", build.BuildCommit)
}
