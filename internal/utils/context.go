// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key used to store the authenticated user in the context.
//
// Example of writing a value to the context:
//
//	ctx := utils.ContextWithUser(ctx, models.PublicUser{ID: id, Email: email})
var UserCtxKey = contextKey("user")

// ContextWithUser returns a copy of ctx carrying user.
func ContextWithUser(ctx context.Context, user models.PublicUser) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
//
// ok is false when no user was stored or the value has an unexpected type.
func GetUserFromContext(ctx context.Context) (models.PublicUser, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.PublicUser)
	return user, ok
}
