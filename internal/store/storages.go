package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
)

// Storages bundles the repositories of one backend together with the
// connection they share.
type Storages struct {
	UserRepository  UserRepository
	OrderRepository OrderRepository
	Database        Database
}

// NewStorages connects to the backend selected by cfg and builds its
// repositories. SQL backends are migrated before use.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	driver, err := cfg.ResolveDriver()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedDriver, err)
	}

	switch driver {
	case config.DriverMongo:
		db, err := NewConnectMongo(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return NewMongoStorages(db, log), nil

	case config.DriverPostgres, config.DriverSQLite:
		var db *DB
		if driver == config.DriverPostgres {
			db, err = NewConnectPostgres(ctx, cfg, log)
		} else {
			db, err = NewConnectSQLite(ctx, cfg, log)
		}
		if err != nil {
			return nil, err
		}

		if err = db.Migrate(ctx); err != nil {
			_ = db.Close(ctx)
			return nil, err
		}
		return NewSQLStorages(db, log), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
}

// NewMongoStorages wires the Mongo repositories to db.
func NewMongoStorages(db *MongoDB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:  NewMongoUserRepository(db, log),
		OrderRepository: NewMongoOrderRepository(db, log),
		Database:        db,
	}
}

// NewSQLStorages wires the SQL repositories to db.
func NewSQLStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		OrderRepository: NewOrderRepository(db, log),
		Database:        db,
	}
}
