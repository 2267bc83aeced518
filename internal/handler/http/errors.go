// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Transport-level errors. Like the service errors, their texts are the
// messages returned to clients.
var (
	ErrInvalidJSON      = errors.New("Invalid JSON")
	ErrTooManyRequests  = errors.New("Too many requests, please try again later")
	ErrInvalidSignature = errors.New("Integrity check failed")
	ErrMissingSignature = errors.New("Missing payment signature")
	ErrPayloadTooLarge  = errors.New("Payload too large")
)
