package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
)

const (
	// Upsert keeps the slot single-row: a second login replaces the first.
	upsertCredential = `
		INSERT INTO credentials (slot, token, user_json, expires_at, verified_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (slot) DO UPDATE SET
			token       = excluded.token,
			user_json   = excluded.user_json,
			expires_at  = excluded.expires_at,
			verified_at = excluded.verified_at;`

	getCredential = `
		SELECT token, user_json, expires_at, verified_at
		FROM credentials
		WHERE slot = 1;`

	touchCredential = `
		UPDATE credentials
		SET user_json = $1, verified_at = $2
		WHERE slot = 1;`

	deleteCredential = `DELETE FROM credentials WHERE slot = 1;`
)

// credentialRepository is the SQLite-backed implementation of
// [CredentialRepository]. The user snapshot travels as a JSON blob so the
// slot schema stays stable as the user model grows.
type credentialRepository struct {
	*DB
	logger *logger.Logger
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided local database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	return &credentialRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveCredential writes the credential into the slot, replacing any previous
// one.
func (c *credentialRepository) SaveCredential(ctx context.Context, credential models.Credential) error {
	log := logger.FromContext(ctx)

	userJSON, err := json.Marshal(credential.User)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.SaveCredential").
			Msg("failed to encode user snapshot")
		return fmt.Errorf("failed to encode user snapshot: %w", err)
	}

	_, err = c.DB.ExecContext(ctx, upsertCredential,
		credential.Token,
		string(userJSON),
		credential.ExpiresAt,
		credential.VerifiedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.SaveCredential").
			Int64("user_id", credential.User.UserID).
			Msg("failed to upsert credential slot")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetCredential reads the stored credential. Returns [ErrCredentialNotFound]
// when the slot is empty.
func (c *credentialRepository) GetCredential(ctx context.Context) (models.Credential, error) {
	log := logger.FromContext(ctx)

	var credential models.Credential
	var userJSON string

	err := c.DB.QueryRowContext(ctx, getCredential).
		Scan(&credential.Token, &userJSON, &credential.ExpiresAt, &credential.VerifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credential{}, ErrCredentialNotFound
		}

		log.Err(err).
			Str("func", "credentialRepository.GetCredential").
			Msg("failed to scan credential slot")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(userJSON), &credential.User); err != nil {
		log.Err(err).
			Str("func", "credentialRepository.GetCredential").
			Msg("failed to decode user snapshot")
		return models.Credential{}, fmt.Errorf("failed to decode user snapshot: %w", err)
	}

	return credential, nil
}

// TouchCredential refreshes the user snapshot and the verification instant
// after a successful server-side revalidation. The token and its expiry stay
// untouched.
func (c *credentialRepository) TouchCredential(ctx context.Context, user models.User, verifiedAt time.Time) error {
	log := logger.FromContext(ctx)

	userJSON, err := json.Marshal(user)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.TouchCredential").
			Msg("failed to encode user snapshot")
		return fmt.Errorf("failed to encode user snapshot: %w", err)
	}

	result, err := c.DB.ExecContext(ctx, touchCredential, string(userJSON), verifiedAt)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.TouchCredential").
			Int64("user_id", user.UserID).
			Msg("failed to update credential slot")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}

// DeleteCredential empties the slot. Deleting an already empty slot is a
// no-op.
func (c *credentialRepository) DeleteCredential(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := c.DB.ExecContext(ctx, deleteCredential); err != nil {
		log.Err(err).
			Str("func", "credentialRepository.DeleteCredential").
			Msg("failed to clear credential slot")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
