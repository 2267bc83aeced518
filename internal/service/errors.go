package service

import "errors"

// Business errors. Their texts are the messages shown to API clients.
var (
	ErrInvalidEmailOrPassword = errors.New("Invalid Email or Password")
	ErrUserAlreadyExists      = errors.New("User Already Exists")
	ErrInvalidUserData        = errors.New("Invalid user Data")
	ErrUserNotFound           = errors.New("User Not Found")

	ErrNoOrderItems     = errors.New("No Order Items")
	ErrInvalidOrderData = errors.New("Invalid order Data")
	ErrOrderNotFound    = errors.New("Order Not Found")

	ErrNoToken                 = errors.New("Not authorized, no token")
	ErrTokenIsExpiredOrInvalid = errors.New("Not authorized, token failed")
	ErrNotAdmin                = errors.New("Not authorized as an admin")
)

var (
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
