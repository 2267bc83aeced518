package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID       = errors.New("invalid document id")
	ErrEmptyName       = errors.New("name is required")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrEmptyPassword   = errors.New("password is required")
	ErrEmptyOrderItems = errors.New("order items list cannot be empty")
	ErrInvalidQuantity = errors.New("order item quantity must be positive")
	ErrInvalidProduct  = errors.New("order item product reference is required")
	ErrNegativePrice   = errors.New("price cannot be negative")
)
