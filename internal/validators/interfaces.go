// Package validators checks shop request payloads before they reach the
// services.
//
// [UserValidator] covers registration and both kinds of user updates,
// [OrderValidator] covers checkout payloads. Both treat a plain string as a
// document id. They dispatch on the dynamic type of the value and report the
// first broken rule as one of the sentinels in errors.go. Passing field names
// limits the check to those fields.
package validators

import "context"

// Validator validates a request value. Unsupported types yield
// [ErrUnsupportedType], unknown field names [ErrUnknownField].
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
