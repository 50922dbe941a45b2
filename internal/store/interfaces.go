// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the credential store: persistence of user
// records keyed by email, on top of PostgreSQL, SQLite or process memory.
package store

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists and looks up user records.
//
// Implementations must enforce email uniqueness themselves: a concurrent
// second insert of the same email fails with [ErrEmailAlreadyExists] and
// leaves the stored record untouched.
type UserRepository interface {
	// CreateUser inserts user and returns the stored record with the
	// server-assigned UserID and CreatedAt.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the user registered under email or
	// [ErrUserNotFound].
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// IDGenerator produces opaque unique identifiers for new users.
type IDGenerator interface {
	Generate() string
}

// ErrorClassificator inspects driver errors returned by a SQL backend.
type ErrorClassificator interface {
	// Classify reports whether a failed operation may succeed on retry.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err was caused by a UNIQUE
	// constraint rejecting the write.
	IsUniqueViolation(err error) bool
}
