package service

import (
	"context"

	"github.com/MKhiriev/go-shop/models"
)

// AuthService issues and verifies credentials.
type AuthService interface {
	// Login checks the email and password and returns the identity with a fresh token.
	Login(ctx context.Context, req models.LoginRequest) (models.UserIdentity, error)
	// Register creates a non-admin account and returns its identity with a token.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserIdentity, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService serves profile and administrative user operations.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (models.UserIdentity, error)
	// UpdateProfile applies the non-empty fields of req and returns the
	// identity with a fresh token.
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserIdentity, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	// UpdateUser applies the non-empty name and email of req and always
	// overwrites the admin flag.
	UpdateUser(ctx context.Context, req models.UpdateUserRequest) (models.UserIdentity, error)
	DeleteUser(ctx context.Context, id string) error

	// IsAdmin reports whether the user with the given id has the admin flag.
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// OrderService serves checkout, payment and delivery operations.
type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req models.CreateOrderRequest) (models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	// PayOrder stores the payment-provider callback verbatim and marks the order paid.
	PayOrder(ctx context.Context, id string, callback models.PaymentCallback) (models.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	DeliverOrder(ctx context.Context, id string) (models.Order, error)
}

// AppInfoService exposes build metadata of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// UserServiceWrapper defines middleware composition for UserService.
// Implementations wrap an existing UserService to add behavior such as
// validating.
type UserServiceWrapper interface {
	Wrap(UserService) UserService
}

// OrderServiceWrapper defines middleware composition for OrderService.
type OrderServiceWrapper interface {
	Wrap(OrderService) OrderService
}

// AuthServiceWrapper defines middleware composition for AuthService.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}
