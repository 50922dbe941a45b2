package service

import "errors"

// Error kinds returned by [AuthService]. Causes are attached with
// fmt.Errorf("%w: %w", kind, cause), so both remain visible to [errors.Is].
// The kind's own message is the only text safe to show to end users.
var (
	// ErrDuplicateCredential is returned by Register when the email is taken.
	ErrDuplicateCredential = errors.New("registration failed")

	// ErrInvalidCredentials is returned by Authenticate for an unknown email
	// and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrStoreUnavailable wraps any unexpected credential store failure.
	ErrStoreUnavailable = errors.New("credential store unavailable")

	// ErrValidation is returned when the input is missing or malformed.
	ErrValidation = errors.New("invalid input")

	ErrPasswordHashingFailed   = errors.New("password hashing failed")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
