package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/adapter"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/store"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
)

// clientSessionService is the concrete implementation of ClientSessionService.
//
// It owns the single persisted credential and decides, on every access,
// whether the credential is usable as-is, needs server revalidation, or must
// be discarded. All decisions are serialised by mu, which doubles as the
// single-flight guard: concurrent Session calls queue up, and whoever enters
// after a revalidation finds a fresh verified_at and returns without a second
// network call.
type clientSessionService struct {
	credentials store.CredentialRepository
	adapter     adapter.ServerAdapter

	stalenessWindow time.Duration

	mu sync.Mutex

	logger *logger.Logger

	// now is stubbed in tests to pin expiry and staleness decisions.
	now func() time.Time
}

// NewClientSessionService constructs a ClientSessionService with the given
// staleness window. A zero or negative window falls back to 5 minutes.
func NewClientSessionService(credentials store.CredentialRepository, serverAdapter adapter.ServerAdapter, stalenessWindow time.Duration, logger *logger.Logger) ClientSessionService {
	if stalenessWindow <= 0 {
		stalenessWindow = 5 * time.Minute
	}

	return &clientSessionService{
		credentials:     credentials,
		adapter:         serverAdapter,
		stalenessWindow: stalenessWindow,
		logger:          logger,
		now:             time.Now,
	}
}

// Register implements ClientSessionService. It registers the account on the
// server and persists the issued credential in the local slot.
func (s *clientSessionService) Register(ctx context.Context, request models.RegisterRequest) (models.Credential, error) {
	auth, err := s.adapter.Register(ctx, request)
	if err != nil {
		return models.Credential{}, mapAdapterError(err)
	}

	return s.storeCredential(ctx, auth)
}

// Login implements ClientSessionService. It authenticates against the server
// and persists the issued credential in the local slot.
func (s *clientSessionService) Login(ctx context.Context, request models.LoginRequest) (models.Credential, error) {
	auth, err := s.adapter.Login(ctx, request)
	if err != nil {
		return models.Credential{}, mapAdapterError(err)
	}

	return s.storeCredential(ctx, auth)
}

// storeCredential persists the issued token with its user snapshot. The
// expiry is taken from the token's own exp claim so the client clock never
// drifts from the server's decision.
func (s *clientSessionService) storeCredential(ctx context.Context, auth models.AuthResponse) (models.Credential, error) {
	expiresAt, err := utils.TokenExpiry(auth.Token)
	if err != nil {
		return models.Credential{}, fmt.Errorf("reading token expiry: %w", err)
	}

	credential := models.Credential{
		Token:      auth.Token,
		User:       auth.User,
		ExpiresAt:  expiresAt,
		VerifiedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.credentials.SaveCredential(ctx, credential); err != nil {
		return models.Credential{}, fmt.Errorf("persisting credential: %w", err)
	}
	s.adapter.SetToken(credential.Token)

	return credential, nil
}

// Session implements ClientSessionService.
//
// Resolution order:
//  1. empty slot → Absent
//  2. expired credential → cleared locally, Absent, no network call
//  3. verified within the staleness window → Valid from the local snapshot
//  4. stale → one Profile round-trip; 401 evicts, success refreshes the
//     snapshot and verified_at, any other failure keeps the credential
func (s *clientSessionService) Session(ctx context.Context) (models.Credential, models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	credential, err := s.credentials.GetCredential(ctx)
	if err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			return models.Credential{}, models.SessionAbsent, nil
		}
		return models.Credential{}, models.SessionAbsent, fmt.Errorf("loading credential: %w", err)
	}

	now := s.now()

	if credential.Expired(now) {
		log.Info().Time("expires_at", credential.ExpiresAt).Msg("stored credential expired, clearing slot")
		s.evict(ctx)
		return models.Credential{}, models.SessionAbsent, nil
	}

	s.adapter.SetToken(credential.Token)

	// The re-check under the lock: a caller that queued behind a concurrent
	// revalidation sees the refreshed verified_at here and goes no further.
	if credential.FreshWithin(s.stalenessWindow, now) {
		return credential, models.SessionValid, nil
	}

	user, err := s.adapter.Profile(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			log.Warn().Msg("server no longer honours the stored token, clearing slot")
			s.evict(ctx)
			return models.Credential{}, models.SessionAbsent, nil
		}

		// Transient failure: the credential stays usable, the caller decides
		// whether stale data is acceptable.
		return credential, models.SessionStale, mapAdapterError(err)
	}

	if err := s.credentials.TouchCredential(ctx, user, now); err != nil {
		return credential, models.SessionStale, fmt.Errorf("refreshing credential snapshot: %w", err)
	}

	credential.User = user
	credential.VerifiedAt = now
	return credential, models.SessionValid, nil
}

// Invalidate implements ClientSessionService. Called by the business services
// when a request bounces with 401 despite a credential that looked usable.
func (s *clientSessionService) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evict(ctx)
	return nil
}

// Logout implements ClientSessionService.
func (s *clientSessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.credentials.DeleteCredential(ctx); err != nil {
		return fmt.Errorf("clearing credential: %w", err)
	}
	s.adapter.SetToken("")
	return nil
}

// evict clears the slot and the adapter token. Callers hold mu.
func (s *clientSessionService) evict(ctx context.Context) {
	if err := s.credentials.DeleteCredential(ctx); err != nil {
		s.logger.Err(err).Msg("failed to clear credential slot")
	}
	s.adapter.SetToken("")
}
