package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mess-manager/models"
)

// CredentialRepository is the client-local single-slot credential store.
// At most one credential is persisted at a time; saving replaces the slot.
type CredentialRepository interface {
	SaveCredential(ctx context.Context, credential models.Credential) error
	GetCredential(ctx context.Context) (models.Credential, error)
	TouchCredential(ctx context.Context, user models.User, verifiedAt time.Time) error
	DeleteCredential(ctx context.Context) error
}
