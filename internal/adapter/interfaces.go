// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the go-auth-keeper HTTP API.
//
// The primary abstraction is [ServerAdapter], which hides the REST transport
// from the command-line client. Error responses are mapped from HTTP status
// codes by mapHTTPError so that callers can use [errors.Is] (e.g.
// [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the go-auth-keeper server.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account and returns its public view.
	Register(ctx context.Context, credentials models.Credentials) (models.PublicUser, error)

	// Login authenticates with the server. On success the session token is
	// stored via SetToken.
	Login(ctx context.Context, credentials models.Credentials) (models.Session, error)

	// Me returns the user the stored token was issued for.
	Me(ctx context.Context) (models.PublicUser, error)
}
