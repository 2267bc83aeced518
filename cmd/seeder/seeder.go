package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/store"
	"github.com/MKhiriev/go-shop/internal/utils"
	"github.com/MKhiriev/go-shop/models"
)

// sampleUser holds a plain-text password that is hashed on import.
type sampleUser struct {
	name     string
	email    string
	password string
	isAdmin  bool
}

var sampleUsers = []sampleUser{
	{name: "Admin User", email: "admin@example.com", password: "123456", isAdmin: true},
	{name: "John Doe", email: "john@example.com", password: "123456"},
	{name: "Jane Doe", email: "jane@example.com", password: "123456"},
}

type seeder struct {
	users  store.UserRepository
	orders store.OrderRepository

	passwordCost int
	logger       *logger.Logger
}

func newSeeder(storages *store.Storages, passwordCost int, logger *logger.Logger) *seeder {
	return &seeder{
		users:        storages.UserRepository,
		orders:       storages.OrderRepository,
		passwordCost: passwordCost,
		logger:       logger,
	}
}

// importUsers replaces all data with the sample users. Orders go first
// because they reference users.
func (s *seeder) importUsers(ctx context.Context) error {
	if err := s.destroy(ctx); err != nil {
		return err
	}

	for _, sample := range sampleUsers {
		hash, err := utils.HashPassword(sample.password, s.passwordCost)
		if err != nil {
			return fmt.Errorf("hash password of %s: %w", sample.email, err)
		}

		created, err := s.users.CreateUser(ctx, models.User{
			Name:     sample.name,
			Email:    sample.email,
			Password: hash,
			IsAdmin:  sample.isAdmin,
		})
		if err != nil {
			return fmt.Errorf("create user %s: %w", sample.email, err)
		}

		s.logger.Debug().Str("user_id", created.ID.Hex()).Str("email", created.Email).Msg("user created")
	}

	s.logger.Info().Int("users", len(sampleUsers)).Msg("data imported")
	return nil
}

func (s *seeder) destroy(ctx context.Context) error {
	if err := s.orders.DeleteAllOrders(ctx); err != nil {
		return fmt.Errorf("delete orders: %w", err)
	}
	if err := s.users.DeleteAllUsers(ctx); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}

	s.logger.Info().Msg("data destroyed")
	return nil
}
