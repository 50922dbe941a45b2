package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload issued on successful authentication.
//
// UserID duplicates the "sub" registered claim so that clients can read the
// identifier without knowing JWT conventions.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`

	jwt.RegisteredClaims
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing).
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted to the client.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims holds the decoded payload of the token.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// User returns the public user the token was issued for.
func (t *Token) User() PublicUser {
	return PublicUser{
		ID:    t.Claims.UserID,
		Email: t.Claims.Email,
	}
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
