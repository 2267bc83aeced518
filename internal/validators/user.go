package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-shop/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field name constants for user-related validation.
const (
	// FieldID targets a hex document identifier passed as a string.
	FieldID = "id"

	// FieldName targets the display name of a user.
	FieldName = "name"

	// FieldEmail targets the login email of a user.
	FieldEmail = "email"

	// FieldPassword targets the plain-text password of a request.
	FieldPassword = "password"

	// FieldOptionalEmail accepts an empty email, and otherwise checks its format.
	FieldOptionalEmail = "optional email"
)

// UserValidator implements Validator for user requests: registration,
// profile updates, administrative updates and raw document ids.
type UserValidator struct {
}

// NewUserValidator constructs a UserValidator and returns it as a Validator.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the dynamic type of obj. Strings are treated as
// document ids.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.UpdateProfileRequest:
		return v.validateUpdateProfileRequest(ctx, value, fields...)
	case *models.UpdateProfileRequest:
		return v.validateUpdateProfileRequest(ctx, *value, fields...)

	case models.UpdateUserRequest:
		return v.validateUpdateUserRequest(ctx, value, fields...)
	case *models.UpdateUserRequest:
		return v.validateUpdateUserRequest(ctx, *value, fields...)

	case string:
		return validateID(value)

	default:
		return ErrUnsupportedType
	}
}

// validateRegisterRequest requires name, email and password by default.
func (v *UserValidator) validateRegisterRequest(_ context.Context, req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(req.Name) == "" {
				return ErrEmptyName
			}
		case FieldEmail:
			if !isValidEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUpdateProfileRequest checks the target id and, if present, the
// email format. Empty fields mean "keep the current value".
func (v *UserValidator) validateUpdateProfileRequest(_ context.Context, req models.UpdateProfileRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldOptionalEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if req.UserID.IsZero() {
				return ErrInvalidID
			}
		case FieldOptionalEmail:
			if req.Email != "" && !isValidEmail(req.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateUpdateUserRequest(_ context.Context, req models.UpdateUserRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldOptionalEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if req.UserID.IsZero() {
				return ErrInvalidID
			}
		case FieldOptionalEmail:
			if req.Email != "" && !isValidEmail(req.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return ErrInvalidID
	}
	return nil
}

// isValidEmail accepts a bare address such as "ann@x.com". Display-name
// forms like "Ann <ann@x.com>" are rejected.
func isValidEmail(email string) bool {
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}

	return addr.Address == email
}
