package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
)

// Storages groups the repositories of the server together with the
// connection they share.
type Storages struct {
	UserRepository UserRepository

	// db is nil for the in-memory driver.
	db *DB
}

// NewStorages opens the backend selected by cfg.DB.Driver, applies the schema
// migrations and builds the repositories on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, idGenerator IDGenerator, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Str("func", "NewStorages").Msg("using in-memory storage: users are lost on restart")
		return &Storages{UserRepository: NewMemoryUserRepository(idGenerator, log)}, nil
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error migrating database")
		db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, idGenerator, log),
		db:             db,
	}, nil
}

// Ping reports whether the backing database is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
