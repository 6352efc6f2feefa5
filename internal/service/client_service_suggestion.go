package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-mess-manager/internal/adapter"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
)

// clientSuggestionService drives the admin review workflow from the client.
// Every call first resolves the session so the adapter carries a live token;
// a 401 on the business call itself means the server revoked the token
// between the session check and the request, so the slot is invalidated.
type clientSuggestionService struct {
	sessions ClientSessionService
	adapter  adapter.ServerAdapter
	logger   *logger.Logger
}

// NewClientSuggestionService constructs a ClientSuggestionService.
func NewClientSuggestionService(sessions ClientSessionService, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientSuggestionService {
	return &clientSuggestionService{sessions: sessions, adapter: serverAdapter, logger: logger}
}

// GetSuggestions implements ClientSuggestionService.
func (c *clientSuggestionService) GetSuggestions(ctx context.Context, status models.SuggestionStatus) ([]models.MenuSuggestion, error) {
	if err := c.requireSession(ctx); err != nil {
		return nil, err
	}

	suggestions, err := c.adapter.GetSuggestions(ctx, status)
	if err != nil {
		return nil, c.mapBusinessError(ctx, err)
	}
	return suggestions, nil
}

// AcceptSuggestion implements ClientSuggestionService.
func (c *clientSuggestionService) AcceptSuggestion(ctx context.Context, suggestionID int64, actingUserID int64) (models.AcceptedRange, error) {
	if err := c.requireSession(ctx); err != nil {
		return models.AcceptedRange{}, err
	}

	accepted, err := c.adapter.AcceptSuggestion(ctx, suggestionID, actingUserID)
	if err != nil {
		return models.AcceptedRange{}, c.mapBusinessError(ctx, err)
	}
	return accepted, nil
}

// RejectSuggestion implements ClientSuggestionService.
func (c *clientSuggestionService) RejectSuggestion(ctx context.Context, suggestionID int64) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	if err := c.adapter.RejectSuggestion(ctx, suggestionID); err != nil {
		return c.mapBusinessError(ctx, err)
	}
	return nil
}

func (c *clientSuggestionService) requireSession(ctx context.Context) error {
	_, state, err := c.sessions.Session(ctx)
	if state == models.SessionAbsent {
		if err != nil {
			return err
		}
		return ErrNotAuthenticated
	}
	// A stale-but-present credential is still usable: the server is the
	// final authority on the request itself.
	return nil
}

// mapBusinessError maps the adapter error and evicts the credential when the
// server answered 401. A 403 keeps the credential: the session is fine, the
// role is not.
func (c *clientSuggestionService) mapBusinessError(ctx context.Context, err error) error {
	if errors.Is(err, adapter.ErrUnauthorized) {
		_ = c.sessions.Invalidate(ctx)
	}
	return mapAdapterError(err)
}
