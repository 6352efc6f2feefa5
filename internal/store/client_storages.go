package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mess-manager/internal/config"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the client service layer. Currently it
// holds only [CredentialRepository]; additional repositories can be added
// here as the feature set grows.
type ClientStorages struct {
	// CredentialRepository is the SQLite-backed single-slot store for the
	// signed token and user snapshot persisted on the client device.
	CredentialRepository CredentialRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It opens an SQLite connection to the file path
// specified in cfg.DB.DSN, creating the database file and the credential
// schema if they do not yet exist.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		CredentialRepository: NewCredentialRepository(db, logger),
	}, nil
}
