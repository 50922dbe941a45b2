package config

import (
	"runtime"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenIssuer    = "go-auth-keeper"
	defaultTokenDuration  = 24 * time.Hour
	defaultHTTPAddress    = "localhost:8080"
	defaultRequestTimeout = 30 * time.Second
)

// defaultConfig returns the lowest-precedence configuration layer.
// TokenSignKey and DSN are intentionally left empty.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      defaultTokenIssuer,
			TokenDuration:    defaultTokenDuration,
			PasswordHashCost: bcrypt.DefaultCost,
		},
		Storage: Storage{
			DB: DB{Driver: DriverPostgres},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
			AllowedOrigins: []string{"*"},
		},
		Workers: Workers{
			HashConcurrency: runtime.NumCPU(),
		},
	}
}
