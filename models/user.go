// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication.
// It is the persistence-level shape of a user and must never be returned
// to callers outside the service layer; use [User.Public] instead.
type User struct {
	// UserID is the opaque unique identifier of the user (UUIDv7).
	// It is assigned once on creation and never changes.
	UserID string `json:"id"`

	// Email is the unique lookup key of the user.
	// It is stored exactly as provided; no case normalisation is applied.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is never serialized and never equal to the plaintext.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns the subset of the user that is safe to expose externally.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.UserID,
		Email: u.Email,
	}
}

// PublicUser is the externally visible projection of a [User].
// It deliberately has no password-related fields.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Credentials is the inbound body of the register and login endpoints.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session bundles an issued token with the public user it was issued for.
type Session struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
