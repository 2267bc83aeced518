package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/migrations"
)

// DB is a SQL connection pool shared by the SQL repositories. It carries the
// dialect specifics: the squirrel placeholder format, the goose dialect and
// the driver error classifier.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	driver             string
	placeholder        sq.PlaceholderFormat
}

// Migrate applies every pending migration of the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	dialect := migrations.DialectPostgres
	if db.driver == config.DriverSQLite {
		dialect = migrations.DialectSQLite
	}

	if err := migrations.Migrate(ctx, db.DB, dialect); err != nil {
		db.logger.Err(err).Str("func", "*DB.Migrate").Str("dialect", dialect).Msg("migration failed")
		return err
	}

	return nil
}

func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Close closes the pool. ctx is accepted to satisfy [Database].
func (db *DB) Close(_ context.Context) error {
	return db.DB.Close()
}

func (db *DB) format() sq.PlaceholderFormat {
	if db.placeholder == nil {
		return sq.Dollar
	}
	return db.placeholder
}

// translate maps a driver error to a store error. Unique violations become
// onUnique when it is set.
func (db *DB) translate(err error, onUnique error) error {
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	classification := Unclassified
	if db.errorClassificator != nil {
		classification = db.errorClassificator.Classify(err)
	}

	switch {
	case classification == ConnectionFailure:
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	case classification == UniqueViolation && onUnique != nil:
		return onUnique
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}
