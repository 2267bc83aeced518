// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoMaxPoolSize = 50

// MongoDB holds the shared client and the shop database handle.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *logger.Logger
}

// NewConnectMongo connects to the MongoDB deployment at cfg.DSN, pings it and
// makes sure the indexes the repositories rely on exist.
func NewConnectMongo(ctx context.Context, cfg config.DB, log *logger.Logger) (*MongoDB, error) {
	opts := options.Client().
		ApplyURI(cfg.DSN).
		SetMaxPoolSize(mongoMaxPoolSize)
	if cfg.Timeout > 0 {
		opts.SetConnectTimeout(cfg.Timeout).SetServerSelectionTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	pingCtx, cancel := withOptionalTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err = client.Ping(pingCtx, nil); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting database (ping)")
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	db := newMongoDB(client, cfg.Name, log)
	if err = db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info().Str("func", "NewConnectMongo").Str("database", cfg.Name).Msg("connected to database successfully")
	return db, nil
}

func newMongoDB(client *mongo.Client, name string, log *logger.Logger) *MongoDB {
	return &MongoDB{
		client:   client,
		database: client.Database(name),
		logger:   log,
	}
}

// ensureIndexes creates the unique email index and the order owner index.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	_, err := m.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		m.logger.Err(err).Str("func", "*MongoDB.ensureIndexes").Msg("failed to create users index")
		return fmt.Errorf("error creating users email index: %w", err)
	}

	_, err = m.orders().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("user"),
	})
	if err != nil {
		m.logger.Err(err).Str("func", "*MongoDB.ensureIndexes").Msg("failed to create orders index")
		return fmt.Errorf("error creating orders user index: %w", err)
	}

	return nil
}

func (m *MongoDB) users() *mongo.Collection {
	return m.database.Collection(models.User{}.TableName())
}

func (m *MongoDB) orders() *mongo.Collection {
	return m.database.Collection(models.Order{}.TableName())
}

func (m *MongoDB) Driver() string {
	return config.DriverMongo
}

func (m *MongoDB) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
