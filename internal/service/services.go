package service

import (
	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/internal/workers"
)

type Services struct {
	AuthService AuthService
}

// NewServices builds the service layer on top of storages. The returned
// AuthService is already wrapped with input validation.
func NewServices(storages *store.Storages, hashPool workers.Executor, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	authService := NewAuthService(storages.UserRepository, hashPool, cfg.App, logger)

	return &Services{
		AuthService: NewAuthValidationService().Wrap(authService),
	}
}
