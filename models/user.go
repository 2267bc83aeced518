package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a shop account used for authentication and authorization.
// The Password field holds a bcrypt hash and is never serialized to JSON.
type User struct {
	// ID is the unique identifier of the user document.
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`

	// Name is the display name of the user.
	Name string `bson:"name" json:"name"`

	// Email is unique across all users and is used as the login.
	Email string `bson:"email" json:"email"`

	// Password is the bcrypt hash of the user's password.
	// Plain-text passwords only ever travel inside request DTOs.
	Password string `bson:"password" json:"-"`

	// IsAdmin grants access to the administrative routes.
	IsAdmin bool `bson:"isAdmin" json:"isAdmin"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TableName returns the name of the collection (or SQL table)
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity returns the public identity of the user without timestamps.
func (u User) Identity() UserIdentity {
	return UserIdentity{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}

// UserIdentity is the public projection of a [User] returned by the
// authentication and profile endpoints. Token is set only when a fresh token
// was issued by the operation.
type UserIdentity struct {
	ID      primitive.ObjectID `json:"_id"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	IsAdmin bool               `json:"isAdmin"`
	Token   string             `json:"token,omitempty"`
}
