package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] so that it can serve as the claims target of
// [jwt.ParseWithClaims]. The only application claim is the subject: the hex id
// of the user, copied into UserID when the token is issued or parsed.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID string `json:"-"`
}

// GetUserID converts the subject of the token into a document id. UserID is
// preferred; the raw "sub" claim is used when it was not filled.
func (t *Token) GetUserID() (primitive.ObjectID, error) {
	subject := t.UserID
	if subject == "" {
		subject = t.Subject
	}

	userID, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("error converting UserID from token to ObjectID: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
