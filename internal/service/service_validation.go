package service

import (
	"context"

	"github.com/MKhiriev/go-shop/internal/validators"
	"github.com/MKhiriev/go-shop/models"
)

// AuthValidationService checks registration input before it reaches the
// wrapped AuthService. Login input is not validated: bad credentials of any
// shape are answered the same way.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.UserIdentity, error) {
	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) Register(ctx context.Context, req models.RegisterRequest) (models.UserIdentity, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.UserIdentity{}, mapUserValidationError(err)
	}
	return v.inner.Register(ctx, req)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

// UserValidationService checks ids and update payloads before they reach
// the wrapped UserService.
type UserValidationService struct {
	inner     UserService
	validator validators.Validator
}

func NewUserValidationService() UserServiceWrapper {
	return &UserValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *UserValidationService) validateID(ctx context.Context, id string) error {
	if err := v.validator.Validate(ctx, id); err != nil {
		return mapUserValidationError(err)
	}
	return nil
}

func (v *UserValidationService) GetProfile(ctx context.Context, userID string) (models.UserIdentity, error) {
	if err := v.validateID(ctx, userID); err != nil {
		return models.UserIdentity{}, err
	}
	return v.inner.GetProfile(ctx, userID)
}

func (v *UserValidationService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserIdentity, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.UserIdentity{}, mapUserValidationError(err)
	}
	return v.inner.UpdateProfile(ctx, req)
}

func (v *UserValidationService) ListUsers(ctx context.Context) ([]models.User, error) {
	return v.inner.ListUsers(ctx)
}

func (v *UserValidationService) GetUser(ctx context.Context, id string) (models.User, error) {
	if err := v.validateID(ctx, id); err != nil {
		return models.User{}, err
	}
	return v.inner.GetUser(ctx, id)
}

func (v *UserValidationService) UpdateUser(ctx context.Context, req models.UpdateUserRequest) (models.UserIdentity, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.UserIdentity{}, mapUserValidationError(err)
	}
	return v.inner.UpdateUser(ctx, req)
}

func (v *UserValidationService) DeleteUser(ctx context.Context, id string) error {
	if err := v.validateID(ctx, id); err != nil {
		return err
	}
	return v.inner.DeleteUser(ctx, id)
}

func (v *UserValidationService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if err := v.validator.Validate(ctx, userID); err != nil {
		return false, nil
	}
	return v.inner.IsAdmin(ctx, userID)
}

func (v *UserValidationService) Wrap(inner UserService) UserService {
	v.inner = inner
	return v
}

// OrderValidationService checks checkout payloads and order ids before they
// reach the wrapped OrderService. Payment callbacks pass unchecked.
type OrderValidationService struct {
	inner     OrderService
	validator validators.Validator
}

func NewOrderValidationService() OrderServiceWrapper {
	return &OrderValidationService{
		validator: validators.NewOrderValidator(),
	}
}

func (v *OrderValidationService) validateID(ctx context.Context, id string) error {
	if err := v.validator.Validate(ctx, id); err != nil {
		return mapOrderValidationError(err)
	}
	return nil
}

func (v *OrderValidationService) CreateOrder(ctx context.Context, userID string, req models.CreateOrderRequest) (models.Order, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Order{}, mapOrderValidationError(err)
	}
	return v.inner.CreateOrder(ctx, userID, req)
}

func (v *OrderValidationService) GetOrder(ctx context.Context, id string) (models.Order, error) {
	if err := v.validateID(ctx, id); err != nil {
		return models.Order{}, err
	}
	return v.inner.GetOrder(ctx, id)
}

func (v *OrderValidationService) PayOrder(ctx context.Context, id string, callback models.PaymentCallback) (models.Order, error) {
	if err := v.validateID(ctx, id); err != nil {
		return models.Order{}, err
	}
	return v.inner.PayOrder(ctx, id, callback)
}

func (v *OrderValidationService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return v.inner.ListUserOrders(ctx, userID)
}

func (v *OrderValidationService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return v.inner.ListOrders(ctx)
}

func (v *OrderValidationService) DeliverOrder(ctx context.Context, id string) (models.Order, error) {
	if err := v.validateID(ctx, id); err != nil {
		return models.Order{}, err
	}
	return v.inner.DeliverOrder(ctx, id)
}

func (v *OrderValidationService) Wrap(inner OrderService) OrderService {
	v.inner = inner
	return v
}
