package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/migrations"
)

// DB is a SQL connection pool together with the dialect-specific pieces the
// repositories need.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	// placeholder is the bind variable format of the dialect ($1 or ?).
	placeholder sq.PlaceholderFormat

	// gooseDialect is the dialect name passed to goose on migration.
	gooseDialect string
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.gooseDialect)
}
