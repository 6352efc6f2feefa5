package store

import (
	"database/sql"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/migrations"
)

// Migrate applies all pending schema migrations to the server database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// forTesting wraps a raw *sql.DB (typically a sqlmock connection) into a
// repository-ready [DB].
func forTesting(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}
}
