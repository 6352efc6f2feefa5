package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/store"
	"github.com/MKhiriev/go-mess-manager/models"
)

// suggestionService is the concrete implementation of SuggestionService.
// It enforces the workflow business rules (expiry, meal type validity) and
// delegates every state transition to the repository, which owns atomicity.
type suggestionService struct {
	suggestionRepository store.SuggestionRepository
	logger               *logger.Logger

	// now is stubbed in tests to pin expiry decisions.
	now func() time.Time
}

// NewSuggestionService constructs a SuggestionService backed by the provided
// repository.
func NewSuggestionService(suggestionRepository store.SuggestionRepository, logger *logger.Logger) SuggestionService {
	return &suggestionService{
		suggestionRepository: suggestionRepository,
		logger:               logger,
		now:                  time.Now,
	}
}

// CreateSuggestion validates and persists a new PENDING suggestion.
//
// Returns ErrInvalidDataProvided for an empty item list,
// ErrInvalidDateRange when end precedes start or an item's date falls outside
// the range, and ErrInvalidMealType for an unknown meal slot.
func (s *suggestionService) CreateSuggestion(ctx context.Context, suggestion models.MenuSuggestion) (models.MenuSuggestion, error) {
	log := logger.FromContext(ctx)

	if len(suggestion.Items) == 0 {
		return models.MenuSuggestion{}, ErrInvalidDataProvided
	}

	if suggestion.EndDate.Before(suggestion.StartDate) {
		return models.MenuSuggestion{}, ErrInvalidDateRange
	}

	for _, item := range suggestion.Items {
		if !models.ValidMealType(item.MealType) {
			return models.MenuSuggestion{}, ErrInvalidMealType
		}
		if item.Date.Before(suggestion.StartDate) || item.Date.After(suggestion.EndDate) {
			return models.MenuSuggestion{}, ErrInvalidDateRange
		}
	}

	created, err := s.suggestionRepository.CreateSuggestion(ctx, suggestion)
	if err != nil {
		log.Err(err).Msg("suggestion creation ended with error")
		return models.MenuSuggestion{}, fmt.Errorf("suggestion creation ended with error: %w", err)
	}

	return created, nil
}

// GetSuggestion returns one suggestion with its items.
func (s *suggestionService) GetSuggestion(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error) {
	return s.suggestionRepository.GetSuggestion(ctx, suggestionID)
}

// GetSuggestions lists suggestions, optionally narrowed by status.
//
// PENDING suggestions whose end date already passed are silently dropped from
// the listing; they stay PENDING in storage and can never be accepted.
func (s *suggestionService) GetSuggestions(ctx context.Context, status models.SuggestionStatus) ([]models.MenuSuggestion, error) {
	return s.suggestionRepository.GetSuggestions(ctx, status, s.now())
}

// AcceptSuggestion transitions a PENDING suggestion to ACCEPTED, materializing
// its items into the live menu plan in one atomic step.
//
// Pre-checks run before the transaction:
//   - unknown id → store.ErrSuggestionNotFound
//   - already decided → ErrInvalidState
//   - end date in the past → ErrSuggestionExpired (the suggestion stays PENDING)
//
// The repository re-checks the status under a row lock, so a concurrent
// accept that slips past the pre-check still resolves to exactly one winner;
// losers surface ErrInvalidState.
func (s *suggestionService) AcceptSuggestion(ctx context.Context, suggestionID int64, actingUserID int64) (models.MenuSuggestion, error) {
	log := logger.FromContext(ctx)

	suggestion, err := s.suggestionRepository.GetSuggestion(ctx, suggestionID)
	if err != nil {
		return models.MenuSuggestion{}, err
	}

	if suggestion.Status != models.SuggestionPending {
		log.Warn().
			Int64("suggestion_id", suggestionID).
			Str("status", string(suggestion.Status)).
			Msg("accept rejected: suggestion already decided")
		return models.MenuSuggestion{}, ErrInvalidState
	}

	if suggestion.ExpiredBy(s.now()) {
		log.Warn().
			Int64("suggestion_id", suggestionID).
			Time("end_date", suggestion.EndDate).
			Msg("accept rejected: suggestion expired")
		return models.MenuSuggestion{}, ErrSuggestionExpired
	}

	accepted, err := s.suggestionRepository.AcceptSuggestion(ctx, suggestionID, actingUserID)
	if err != nil {
		if errors.Is(err, store.ErrSuggestionNotPending) {
			return models.MenuSuggestion{}, ErrInvalidState
		}

		log.Err(err).Int64("suggestion_id", suggestionID).Msg("suggestion acceptance ended with error")
		return models.MenuSuggestion{}, fmt.Errorf("suggestion acceptance ended with error: %w", err)
	}

	return accepted, nil
}

// RejectSuggestion transitions a PENDING suggestion to REJECTED.
//
// Rejecting an already decided suggestion yields ErrInvalidState; rejecting a
// PENDING suggestion always succeeds, including an expired one (rejection is
// how stale suggestions are cleaned up).
func (s *suggestionService) RejectSuggestion(ctx context.Context, suggestionID int64) error {
	log := logger.FromContext(ctx)

	if err := s.suggestionRepository.RejectSuggestion(ctx, suggestionID); err != nil {
		if errors.Is(err, store.ErrSuggestionNotPending) {
			return ErrInvalidState
		}
		if errors.Is(err, store.ErrSuggestionNotFound) {
			return err
		}

		log.Err(err).Int64("suggestion_id", suggestionID).Msg("suggestion rejection ended with error")
		return fmt.Errorf("suggestion rejection ended with error: %w", err)
	}

	return nil
}
