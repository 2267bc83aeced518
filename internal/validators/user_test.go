// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-shop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"}
}

// ---------------------------------------------------------------------------
// TestUserValidator_Dispatch
// ---------------------------------------------------------------------------

func TestUserValidator_Dispatch(t *testing.T) {
	v := NewUserValidator()
	require.NotNil(t, v)
	ctx := context.Background()
	id := primitive.NewObjectID()

	tests := []struct {
		name    string
		obj     any
		wantErr error
	}{
		{name: "register value", obj: validRegisterRequest()},
		{name: "register pointer", obj: func() *models.RegisterRequest { r := validRegisterRequest(); return &r }()},
		{name: "profile update value", obj: models.UpdateProfileRequest{UserID: id}},
		{name: "profile update pointer", obj: &models.UpdateProfileRequest{UserID: id}},
		{name: "admin update value", obj: models.UpdateUserRequest{UserID: id}},
		{name: "admin update pointer", obj: &models.UpdateUserRequest{UserID: id, IsAdmin: true}},
		{name: "hex id", obj: id.Hex()},
		{name: "bad hex id", obj: "42", wantErr: ErrInvalidID},
		{name: "unsupported", obj: 42, wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.obj)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateRegisterRequest
// ---------------------------------------------------------------------------

func TestValidateRegisterRequest(t *testing.T) {
	v := &UserValidator{}
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(*models.RegisterRequest) {}},
		{name: "blank name", mutate: func(r *models.RegisterRequest) { r.Name = "   " }, wantErr: ErrEmptyName},
		{name: "empty email", mutate: func(r *models.RegisterRequest) { r.Email = "" }, wantErr: ErrInvalidEmail},
		{name: "malformed email", mutate: func(r *models.RegisterRequest) { r.Email = "ann.x.com" }, wantErr: ErrInvalidEmail},
		{name: "display name email", mutate: func(r *models.RegisterRequest) { r.Email = "Ann <ann@x.com>" }, wantErr: ErrInvalidEmail},
		{name: "empty password", mutate: func(r *models.RegisterRequest) { r.Password = "" }, wantErr: ErrEmptyPassword},
		{name: "scoped to email ignores name", mutate: func(r *models.RegisterRequest) { r.Name = "" }, fields: []string{FieldEmail}},
		{name: "unknown field", mutate: func(*models.RegisterRequest) {}, fields: []string{"nope"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := v.validateRegisterRequest(ctx, req, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateUpdateRequests
// ---------------------------------------------------------------------------

func TestValidateUpdateProfileRequest(t *testing.T) {
	v := &UserValidator{}
	ctx := context.Background()
	id := primitive.NewObjectID()

	assert.NoError(t, v.validateUpdateProfileRequest(ctx, models.UpdateProfileRequest{UserID: id}))
	assert.NoError(t, v.validateUpdateProfileRequest(ctx, models.UpdateProfileRequest{UserID: id, Email: "new@x.com"}))
	assert.ErrorIs(t, v.validateUpdateProfileRequest(ctx, models.UpdateProfileRequest{}), ErrInvalidID)
	assert.ErrorIs(t, v.validateUpdateProfileRequest(ctx, models.UpdateProfileRequest{UserID: id, Email: "bad"}), ErrInvalidEmail)
}

func TestValidateUpdateUserRequest(t *testing.T) {
	v := &UserValidator{}
	ctx := context.Background()
	id := primitive.NewObjectID()

	assert.NoError(t, v.validateUpdateUserRequest(ctx, models.UpdateUserRequest{UserID: id, IsAdmin: true}))
	assert.ErrorIs(t, v.validateUpdateUserRequest(ctx, models.UpdateUserRequest{IsAdmin: true}), ErrInvalidID)
	assert.ErrorIs(t, v.validateUpdateUserRequest(ctx, models.UpdateUserRequest{UserID: id, Email: "x@"}), ErrInvalidEmail)
	assert.ErrorIs(t, v.validateUpdateUserRequest(ctx, models.UpdateUserRequest{UserID: id}, "bogus"), ErrUnknownField)
}
