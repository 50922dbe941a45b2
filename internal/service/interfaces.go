package service

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=AuthServiceWrapper

// AuthService registers users, verifies their credentials and issues and
// checks session tokens.
type AuthService interface {
	// Register creates a user for credentials and returns its public view.
	Register(ctx context.Context, credentials models.Credentials) (models.PublicUser, error)

	// Authenticate verifies credentials and issues a session token.
	Authenticate(ctx context.Context, credentials models.Credentials) (models.Session, error)

	// ParseToken validates a token previously issued by Authenticate.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// logging or validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService // returns a decorated AuthService applying additional behavior
}
