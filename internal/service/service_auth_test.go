package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/mock"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/internal/workers"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:     "test-sign-key",
		TokenIssuer:      "test-issuer",
		TokenDuration:    24 * time.Hour,
		PasswordHashCost: bcrypt.MinCost,
	}
}

func newMemoryAuthService(t *testing.T) (AuthService, store.UserRepository) {
	t.Helper()
	repo := store.NewMemoryUserRepository(utils.NewUUIDGenerator(), logger.Nop())
	return NewAuthService(repo, workers.NewPool(4), testAppConfig(), logger.Nop()), repo
}

func newMockAuthService(t *testing.T) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	return NewAuthService(repo, workers.NewPool(1), testAppConfig(), logger.Nop()), repo
}

// failingExecutor never runs the function it is given.
type failingExecutor struct {
	err error
}

func (f failingExecutor) Do(context.Context, func() error) error { return f.err }

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	svc, repo := newMemoryAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)

	stored, err := repo.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRegister_LogLinesNameTheirFunction(t *testing.T) {
	svc, _ := newMemoryAuthService(t)
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	_, err := svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrDuplicateCredential)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "*authService.Register", entry["func"], line)
	}
	assert.Contains(t, lines[0], "user registered")
}

func TestRegister_DistinctUsersGetDistinctIDs(t *testing.T) {
	svc, _ := newMemoryAuthService(t)
	ctx := context.Background()

	u1, err := svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	u2, err := svc.Register(ctx, models.Credentials{Email: "b@x.com", Password: "secret1"})
	require.NoError(t, err)

	assert.NotEqual(t, u1.ID, u2.ID)
}

func TestRegister_DuplicateLeavesStoreUnchanged(t *testing.T) {
	svc, repo := newMemoryAuthService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	before, err := repo.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "other-password"})
	require.ErrorIs(t, err, ErrDuplicateCredential)

	after, err := repo.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, first.ID, after.UserID)

	// the original password still works, the rejected one does not
	_, err = svc.Authenticate(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, models.Credentials{Email: "a@x.com", Password: "other-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_EmailCaseIsPreserved(t *testing.T) {
	svc, _ := newMemoryAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, models.Credentials{Email: "Mixed@X.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Mixed@X.com", user.Email)

	_, err = svc.Register(ctx, models.Credentials{Email: "mixed@x.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	svc, _ := newMemoryAuthService(t)
	ctx := context.Background()

	const attempts = 16
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, models.Credentials{Email: "race@x.com", Password: "secret1"})
		}()
	}
	wg.Wait()

	var ok, dupes int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrDuplicateCredential):
			dupes++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, dupes)
}

func TestRegister_LostRaceMapsToDuplicate(t *testing.T) {
	svc, repo := newMockAuthService(t)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().FindUserByEmail(ctx, "a@x.com").Return(models.User{}, store.ErrUserNotFound),
		repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists),
	)

	_, err := svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrDuplicateCredential)
}

func TestRegister_PersistsHashNotPlaintext(t *testing.T) {
	svc, repo := newMockAuthService(t)
	ctx := context.Background()

	repo.EXPECT().FindUserByEmail(ctx, "a@x.com").Return(models.User{}, store.ErrUserNotFound)
	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "a@x.com", u.Email)
			assert.Empty(t, u.UserID, "id is assigned by the store")
			assert.NotEqual(t, "secret1", u.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))

			u.UserID = "u-1"
			return u, nil
		},
	)

	user, err := svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.PublicUser{ID: "u-1", Email: "a@x.com"}, user)
}

func TestRegister_StoreFailures(t *testing.T) {
	dbErr := errors.New("connection refused")

	t.Run("lookup", func(t *testing.T) {
		svc, repo := newMockAuthService(t)
		repo.EXPECT().FindUserByEmail(gomock.Any(), "a@x.com").Return(models.User{}, dbErr)

		_, err := svc.Register(context.Background(), models.Credentials{Email: "a@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("insert", func(t *testing.T) {
		svc, repo := newMockAuthService(t)
		repo.EXPECT().FindUserByEmail(gomock.Any(), "a@x.com").Return(models.User{}, store.ErrUserNotFound)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, dbErr)

		_, err := svc.Register(context.Background(), models.Credentials{Email: "a@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.ErrorIs(t, err, dbErr)
		assert.NotContains(t, err.Error(), "secret1")
	})
}

func TestRegister_HashingPoolUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(repo, failingExecutor{err: context.DeadlineExceeded}, testAppConfig(), logger.Nop())

	repo.EXPECT().FindUserByEmail(gomock.Any(), "a@x.com").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Register(context.Background(), models.Credentials{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrPasswordHashingFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ─────────────────────────────────────────────
// Authenticate
// ─────────────────────────────────────────────

func TestAuthenticate_Success(t *testing.T) {
	svc, _ := newMemoryAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, registered, session.User)

	token, err := svc.ParseToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, token.Claims.UserID)
	assert.Equal(t, registered.ID, token.Claims.Subject)
	assert.Equal(t, "a@x.com", token.Claims.Email)
	assert.Equal(t, "test-issuer", token.Claims.Issuer)
	assert.Equal(t, 24*time.Hour, token.Claims.ExpiresAt.Sub(token.Claims.IssuedAt.Time))
}

func TestAuthenticate_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	svc, _ := newMemoryAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, models.Credentials{Email: "a@x.com", Password: "wrong"})
	_, unknownEmail := svc.Authenticate(ctx, models.Credentials{Email: "nobody@x.com", Password: "anything"})

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthenticate_UnknownEmailStillComparesHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	var calls int
	counting := executorFunc(func(ctx context.Context, fn func() error) error {
		calls++
		return fn()
	})
	svc := NewAuthService(repo, counting, testAppConfig(), logger.Nop())

	repo.EXPECT().FindUserByEmail(gomock.Any(), "nobody@x.com").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Authenticate(context.Background(), models.Credentials{Email: "nobody@x.com", Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, calls)
}

func TestNewAuthService_DummyHashIsReadyBeforeFirstLogin(t *testing.T) {
	svc := NewAuthService(mock.NewMockUserRepository(gomock.NewController(t)), workers.NewPool(1), testAppConfig(), logger.Nop())

	impl, ok := svc.(*authService)
	require.True(t, ok)
	require.NotEmpty(t, impl.dummyHash)

	cost, err := bcrypt.Cost([]byte(impl.dummyHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestAuthenticate_UnusableDummyHashIsStillInvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	cfg := testAppConfig()
	cfg.PasswordHashCost = bcrypt.MaxCost + 1
	svc := NewAuthService(repo, workers.NewPool(1), cfg, logger.Nop())

	repo.EXPECT().FindUserByEmail(gomock.Any(), "nobody@x.com").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Authenticate(context.Background(), models.Credentials{Email: "nobody@x.com", Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, errors.Is(err, ErrPasswordHashingFailed))
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	svc, repo := newMockAuthService(t)
	dbErr := errors.New("connection reset")

	repo.EXPECT().FindUserByEmail(gomock.Any(), "a@x.com").Return(models.User{}, dbErr)

	_, err := svc.Authenticate(context.Background(), models.Credentials{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuthenticate_CorruptedHash(t *testing.T) {
	svc, repo := newMockAuthService(t)

	repo.EXPECT().FindUserByEmail(gomock.Any(), "a@x.com").
		Return(models.User{UserID: "u-1", Email: "a@x.com", PasswordHash: "not-a-bcrypt-hash"}, nil)

	_, err := svc.Authenticate(context.Background(), models.Credentials{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_TokenCreationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	cfg := testAppConfig()
	cfg.TokenSignKey = ""
	svc := NewAuthService(repo, workers.NewPool(1), cfg, logger.Nop())

	repo.EXPECT().FindUserByEmail(gomock.Any(), "a@x.com").
		Return(models.User{UserID: "u-1", Email: "a@x.com", PasswordHash: mustHash(t, "secret1")}, nil)

	_, err := svc.Authenticate(context.Background(), models.Credentials{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthenticate_SessionNeverCarriesHash(t *testing.T) {
	svc, repo := newMockAuthService(t)
	hash := mustHash(t, "secret1")

	repo.EXPECT().FindUserByEmail(gomock.Any(), "a@x.com").
		Return(models.User{UserID: "u-1", Email: "a@x.com", PasswordHash: hash}, nil)

	session, err := svc.Authenticate(context.Background(), models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.PublicUser{ID: "u-1", Email: "a@x.com"}, session.User)
	assert.False(t, strings.Contains(session.Token, hash))
}

// ─────────────────────────────────────────────
// ParseToken
// ─────────────────────────────────────────────

func TestParseToken_Invalid(t *testing.T) {
	svc, _ := newMemoryAuthService(t)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ParseToken(context.Background(), tokenString)
		assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid, tokenString)
	}
}

func TestParseToken_ForeignKey(t *testing.T) {
	svc, _ := newMemoryAuthService(t)

	foreign, err := utils.GenerateJWTToken("test-issuer", models.PublicUser{ID: "u-1"}, time.Hour, "another-key")
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), foreign.String())
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ─────────────────────────────────────────────
// Concrete scenario
// ─────────────────────────────────────────────

func TestRegisterAndAuthenticate_Scenario(t *testing.T) {
	svc, _ := newMemoryAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = svc.Register(ctx, models.Credentials{Email: "a@x.com", Password: "different"})
	assert.ErrorIs(t, err, ErrDuplicateCredential)

	session, err := svc.Authenticate(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "a@x.com", session.User.Email)

	_, err = svc.Authenticate(ctx, models.Credentials{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, models.Credentials{Email: "nobody@x.com", Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

type executorFunc func(ctx context.Context, fn func() error) error

func (f executorFunc) Do(ctx context.Context, fn func() error) error { return f(ctx, fn) }
