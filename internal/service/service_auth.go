package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/internal/workers"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hashPool bounds the number of bcrypt operations running at once.
	hashPool workers.Executor

	// hashCost is the bcrypt work factor for new hashes.
	hashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// dummyHash is compared against when the email is unknown, so a failed
	// login costs the same whether or not the user exists. It is hashed with
	// hashCost at construction.
	dummyHash string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hashPool workers.Executor, cfg config.App, logger *logger.Logger) AuthService {
	dummyHash, err := utils.HashPassword("go-auth-keeper:unknown-user", cfg.PasswordHashCost)
	if err != nil {
		logger.Err(err).Str("func", "NewAuthService").Msg("dummy password hash was not generated")
	}

	return &authService{
		userRepository: userRepository,
		hashPool:       hashPool,
		hashCost:       cfg.PasswordHashCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		dummyHash:      dummyHash,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// It checks that the email is free, hashes the password inside the hashing
// pool and delegates persistence to the UserRepository.
//
// Returns the public view of the stored user or:
//   - ErrDuplicateCredential if the email is taken, including when a
//     concurrent registration wins the race to the unique constraint.
//   - ErrStoreUnavailable wrapping any other repository failure.
//   - ErrPasswordHashingFailed if hashing did not complete.
func (a *authService) Register(ctx context.Context, credentials models.Credentials) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	_, err := a.userRepository.FindUserByEmail(ctx, credentials.Email)
	switch {
	case err == nil:
		log.Info().Str("func", "*authService.Register").Msg("email is already registered")
		return models.PublicUser{}, ErrDuplicateCredential
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*authService.Register").Msg("user search by email failed")
		return models.PublicUser{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	var passwordHash string
	err = a.hashPool.Do(ctx, func() error {
		var hashErr error
		passwordHash, hashErr = utils.HashPassword(credentials.Password, a.hashCost)
		return hashErr
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.PublicUser{}, fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        credentials.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Info().Str("func", "*authService.Register").Msg("email was registered concurrently")
			return models.PublicUser{}, ErrDuplicateCredential
		}
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.PublicUser{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	log.Info().Str("func", "*authService.Register").Str("user_id", registeredUser.UserID).Msg("user registered")

	return registeredUser.Public(), nil
}

// Authenticate verifies an existing user's credentials and issues a session.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials and
// both cost one bcrypt comparison.
//
// Returns the session or:
//   - ErrInvalidCredentials on unknown email or wrong password.
//   - ErrStoreUnavailable wrapping any other repository failure.
//   - ErrPasswordHashingFailed if the comparison did not complete.
//   - ErrTokenCreationFailed if the token could not be signed.
func (a *authService) Authenticate(ctx context.Context, credentials models.Credentials) (models.Session, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByEmail(ctx, credentials.Email)
	userExists := true
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by email failed")
			return models.Session{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		userExists = false
	}

	var compareErr error
	err = a.hashPool.Do(ctx, func() error {
		hash := foundUser.PasswordHash
		if !userExists {
			hash = a.dummyHash
		}
		compareErr = utils.ComparePassword(hash, credentials.Password)
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("password comparison failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}

	if !userExists {
		if compareErr != nil && !errors.Is(compareErr, utils.ErrPasswordMismatch) {
			log.Err(compareErr).Str("func", "*authService.Authenticate").Msg("dummy password hash is unusable")
		}
		log.Info().Str("func", "*authService.Authenticate").Msg("unknown email")
		return models.Session{}, ErrInvalidCredentials
	}
	if compareErr != nil {
		if !errors.Is(compareErr, utils.ErrPasswordMismatch) {
			log.Err(compareErr).Str("func", "*authService.Authenticate").Str("user_id", foundUser.UserID).Msg("stored password hash is unusable")
		} else {
			log.Info().Str("func", "*authService.Authenticate").Str("user_id", foundUser.UserID).Msg("wrong password")
		}
		return models.Session{}, ErrInvalidCredentials
	}

	token, err := a.createToken(foundUser.Public())
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Str("user_id", foundUser.UserID).Msg("token creation failed")
		return models.Session{}, err
	}

	return models.Session{
		Token: token.String(),
		User:  token.User(),
	}, nil
}

// createToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) createToken(user models.PublicUser) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
