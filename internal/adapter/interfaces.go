// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the go-shop HTTP API.
//
// [ShopClient] is what shopctl talks to. Non-2xx answers are mapped by
// mapHTTPError to the sentinel errors in errors.go, so callers can branch with
// [errors.Is] (e.g. [ErrUnauthorized] for 401, [ErrForbidden] for 403). The
// server's message is kept in the error text.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-shop/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/shop_client_mock.go -package=mock

// ShopClient defines the operator-facing calls of the shop API.
type ShopClient interface {
	// SetToken stores the bearer token attached to every authenticated
	// request.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Login exchanges credentials for a token. On success the token is
	// stored via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.UserIdentity, error)

	// Profile returns the identity of the token owner.
	Profile(ctx context.Context) (models.UserIdentity, error)

	// ListUsers returns all users. Requires an administrator token.
	ListUsers(ctx context.Context) ([]models.User, error)

	// ListOrders returns all orders. Requires an administrator token.
	ListOrders(ctx context.Context) ([]models.Order, error)

	// MyOrders returns the orders of the token owner.
	MyOrders(ctx context.Context) ([]models.Order, error)

	// GetOrder returns one order with its owner joined.
	GetOrder(ctx context.Context, id string) (models.Order, error)

	// DeliverOrder marks an order as delivered. Requires an administrator
	// token.
	DeliverOrder(ctx context.Context, id string) (models.Order, error)

	// PayOrder sends a payment callback for the order. When a payment hash
	// key is configured the body is signed with HMAC-SHA256.
	PayOrder(ctx context.Context, id string, callback models.PaymentCallback) (models.Order, error)

	// Version returns the build information reported by the server.
	Version(ctx context.Context) (models.AppBuildInfo, error)
}
