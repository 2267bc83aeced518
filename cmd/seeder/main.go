// Command seeder fills the store with sample users or wipes it.
//
//	seeder -import    insert the sample users
//	seeder -destroy   delete all orders and users
//
// The storage connection is configured the same way as for the server; no
// token sign key is needed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/store"
)

func main() {
	fs := flag.NewFlagSet("seeder", flag.ExitOnError)
	importData := fs.Bool("import", false, "insert sample users")
	destroyData := fs.Bool("destroy", false, "delete all orders and users")
	verbose := fs.Bool("v", false, "verbose output")
	_ = fs.Parse(os.Args[1:])

	log := logger.NewCLILogger("go-shop-seeder", *verbose)

	if *importData == *destroyData {
		fmt.Fprintln(os.Stderr, "usage: seeder -import | -destroy")
		os.Exit(2)
	}

	cfg, err := config.GetSeederConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = run(context.Background(), cfg, *destroyData, log); err != nil {
		log.Error().Err(err).Msg("seeding failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.StructuredConfig, destroy bool, log *logger.Logger) error {
	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Database.Close(ctx)

	s := newSeeder(storages, cfg.App.PasswordCost, log)
	if destroy {
		return s.destroy(ctx)
	}
	return s.importUsers(ctx)
}
