package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mess-manager/internal/config"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
)

// Storages groups all server-side repositories into a single value that can
// be passed to the service layer.
type Storages struct {
	UserRepository       UserRepository
	SuggestionRepository SuggestionRepository
	MenuRepository       MenuRepository
	RecordsRepository    RecordsRepository
}

// NewStorages initialises the server storage layer: it connects to
// PostgreSQL, runs pending schema migrations, and wires every repository to
// the shared connection.
func NewStorages(cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(context.Background(), cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository:       NewUserRepository(db, log),
		SuggestionRepository: NewSuggestionRepository(db, log),
		MenuRepository:       NewMenuRepository(db, log),
		RecordsRepository:    NewRecordsRepository(db, log),
	}, nil
}
