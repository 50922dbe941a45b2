package validators

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-auth-keeper/models"
)

const (
	// FieldEmail - email of the credentials.
	FieldEmail = "email"

	// FieldPassword - plaintext password of the credentials.
	FieldPassword = "password"
)

const (
	// maxPasswordBytes is the longest input bcrypt accepts.
	maxPasswordBytes = 72

	// maxEmailLength matches the users.email column.
	maxEmailLength = 320
)

// CredentialsValidator checks [models.Credentials] received from clients.
type CredentialsValidator struct {
}

func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateCredentials(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateCredentials(_ context.Context, credentials models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := validateEmail(credentials.Email); err != nil {
				return err
			}
		case FieldPassword:
			if credentials.Password == "" {
				return ErrEmptyPassword
			}
			if len(credentials.Password) > maxPasswordBytes {
				return ErrPasswordTooLong
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// validateEmail only requires a non-empty value within the users.email column
// bound. The address is stored exactly as given, so no format is imposed.
func validateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return ErrEmailTooLong
	}

	return nil
}
