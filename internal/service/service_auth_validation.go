package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-auth-keeper/internal/validators"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// AuthValidationService rejects empty credentials before they reach the
// wrapped AuthService, so no store lookup or hashing is spent on them.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewCredentialsValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, credentials models.Credentials) (models.PublicUser, error) {
	if err := v.validator.Validate(ctx, credentials); err != nil {
		return models.PublicUser{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.Register(ctx, credentials)
}

// Authenticate only requires both fields to be present. Length bounds are not
// applied here: an oversized value simply fails to match any user.
func (v *AuthValidationService) Authenticate(ctx context.Context, credentials models.Credentials) (models.Session, error) {
	if credentials.Email == "" || credentials.Password == "" {
		return models.Session{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	return v.inner.Authenticate(ctx, credentials)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if tokenString == "" {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) Wrap(wrapper AuthService) AuthService {
	v.inner = wrapper
	return v
}
