package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// memoryUserRepository keeps users in a map keyed by email. Check and insert
// happen under one lock, so uniqueness holds under concurrent registration.
// Contents are lost when the process exits.
type memoryUserRepository struct {
	mu          sync.RWMutex
	users       map[string]models.User
	idGenerator IDGenerator
	now         func() time.Time
}

// NewMemoryUserRepository returns an empty in-process [UserRepository].
func NewMemoryUserRepository(idGenerator IDGenerator, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating in-memory user repository")
	return &memoryUserRepository{
		users:       make(map[string]models.User),
		idGenerator: idGenerator,
		now:         time.Now,
	}
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return models.User{}, ErrEmailAlreadyExists
	}

	if user.UserID == "" {
		user.UserID = r.idGenerator.Generate()
	}
	user.CreatedAt = r.now().UTC()
	r.users[user.Email] = user

	return user, nil
}

func (r *memoryUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	return user, nil
}
