package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shop/models"
)

// UserRepository persists shop accounts. Identifiers cross this boundary as
// hex strings; a string that is not a valid id behaves like a missing record.
type UserRepository interface {
	// CreateUser assigns an id and timestamps to user and stores it.
	// Returns ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns the user with the given email, password hash included.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns the user with the given id, password hash included.
	FindUserByID(ctx context.Context, id string) (models.User, error)
	// FindAllUsers returns every user without password hashes.
	FindAllUsers(ctx context.Context) ([]models.User, error)
	// UpdateUser overwrites name, email, password and isAdmin of the stored
	// user with the values of user and returns the stored result.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	// DeleteUser removes the user. Returns ErrUserNotFound if nothing was removed.
	DeleteUser(ctx context.Context, id string) error
	// DeleteAllUsers removes every user.
	DeleteAllUsers(ctx context.Context) error
}

// OrderRepository persists orders. Owners are referenced by id and joined
// only by the reads that need them.
type OrderRepository interface {
	// CreateOrder assigns an id and timestamps to order and stores it.
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	// FindOrderByID returns the order with its owner's name and email joined.
	FindOrderByID(ctx context.Context, id string) (models.Order, error)
	// FindOrdersByUser returns the orders owned by userID.
	FindOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	// FindAllOrders returns every order with its owner's name joined.
	FindAllOrders(ctx context.Context) ([]models.Order, error)
	// MarkOrderPaid sets the paid flag, the paid timestamp and the payment result.
	MarkOrderPaid(ctx context.Context, id string, result models.PaymentResult, paidAt time.Time) (models.Order, error)
	// MarkOrderDelivered sets the delivered flag and timestamp.
	MarkOrderDelivered(ctx context.Context, id string, deliveredAt time.Time) (models.Order, error)
	// DeleteAllOrders removes every order.
	DeleteAllOrders(ctx context.Context) error
}

// Database is the connection handle behind a set of repositories.
type Database interface {
	// Driver returns the backend name (mongo, postgres or sqlite).
	Driver() string
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the connection pool.
	Close(ctx context.Context) error
}

// ErrorClassificator maps driver-specific errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
