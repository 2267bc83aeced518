// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop/internal/store"
	"github.com/MKhiriev/go-shop/internal/validators"
)

// mapStoreError translates a repository error into a business error. The
// original error stays in the chain. Unknown errors pass through unchanged.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return fmt.Errorf("%w: %w", ErrUserAlreadyExists, err)
	case errors.Is(err, store.ErrOrderNotFound):
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	}

	return err
}

// mapUserValidationError translates a validator error on user input.
// An invalid id means the user cannot exist.
func mapUserValidationError(err error) error {
	if errors.Is(err, validators.ErrInvalidID) {
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidUserData, err)
}

// mapOrderValidationError translates a validator error on order input.
func mapOrderValidationError(err error) error {
	switch {
	case errors.Is(err, validators.ErrInvalidID):
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	case errors.Is(err, validators.ErrEmptyOrderItems):
		return fmt.Errorf("%w: %w", ErrNoOrderItems, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidOrderData, err)
	}
}
