// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/store"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.SuggestionRepository
// ─────────────────────────────────────────────

type mockSuggestionRepository struct {
	createSuggestionFn func(ctx context.Context, suggestion models.MenuSuggestion) (models.MenuSuggestion, error)
	getSuggestionFn    func(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error)
	getSuggestionsFn   func(ctx context.Context, status models.SuggestionStatus, notExpiredOn time.Time) ([]models.MenuSuggestion, error)
	acceptSuggestionFn func(ctx context.Context, suggestionID, actingUserID int64) (models.MenuSuggestion, error)
	rejectSuggestionFn func(ctx context.Context, suggestionID int64) error
}

func (m *mockSuggestionRepository) CreateSuggestion(ctx context.Context, suggestion models.MenuSuggestion) (models.MenuSuggestion, error) {
	if m.createSuggestionFn != nil {
		return m.createSuggestionFn(ctx, suggestion)
	}
	return suggestion, nil
}

func (m *mockSuggestionRepository) GetSuggestion(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error) {
	if m.getSuggestionFn != nil {
		return m.getSuggestionFn(ctx, suggestionID)
	}
	return models.MenuSuggestion{}, nil
}

func (m *mockSuggestionRepository) GetSuggestions(ctx context.Context, status models.SuggestionStatus, notExpiredOn time.Time) ([]models.MenuSuggestion, error) {
	if m.getSuggestionsFn != nil {
		return m.getSuggestionsFn(ctx, status, notExpiredOn)
	}
	return nil, nil
}

func (m *mockSuggestionRepository) AcceptSuggestion(ctx context.Context, suggestionID, actingUserID int64) (models.MenuSuggestion, error) {
	if m.acceptSuggestionFn != nil {
		return m.acceptSuggestionFn(ctx, suggestionID, actingUserID)
	}
	return models.MenuSuggestion{}, nil
}

func (m *mockSuggestionRepository) RejectSuggestion(ctx context.Context, suggestionID int64) error {
	if m.rejectSuggestionFn != nil {
		return m.rejectSuggestionFn(ctx, suggestionID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestSuggestionService(repo *mockSuggestionRepository) *suggestionService {
	return &suggestionService{
		suggestionRepository: repo,
		logger:               logger.Nop(),
		now:                  func() time.Time { return testNow },
	}
}

func pendingSuggestion(id int64, start, end time.Time) models.MenuSuggestion {
	return models.MenuSuggestion{
		SuggestionID: id,
		StartDate:    start,
		EndDate:      end,
		Status:       models.SuggestionPending,
		Items: []models.SuggestionItem{
			{Date: start, MealType: models.MealLunch, FoodItemID: 1, PlannedQuantity: 10},
		},
	}
}

// ─────────────────────────────────────────────
// CreateSuggestion
// ─────────────────────────────────────────────

func TestSuggestionService_CreateSuggestion_Success(t *testing.T) {
	repo := &mockSuggestionRepository{
		createSuggestionFn: func(ctx context.Context, suggestion models.MenuSuggestion) (models.MenuSuggestion, error) {
			suggestion.SuggestionID = 1
			suggestion.Status = models.SuggestionPending
			return suggestion, nil
		},
	}
	svc := newTestSuggestionService(repo)

	start := testNow.AddDate(0, 0, 1)
	end := testNow.AddDate(0, 0, 7)

	got, err := svc.CreateSuggestion(context.Background(), pendingSuggestion(0, start, end))
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.SuggestionID)
	assert.Equal(t, models.SuggestionPending, got.Status)
}

func TestSuggestionService_CreateSuggestion_NoItems(t *testing.T) {
	svc := newTestSuggestionService(&mockSuggestionRepository{})

	_, err := svc.CreateSuggestion(context.Background(), models.MenuSuggestion{
		StartDate: testNow,
		EndDate:   testNow.AddDate(0, 0, 7),
	})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestSuggestionService_CreateSuggestion_InvertedRange(t *testing.T) {
	svc := newTestSuggestionService(&mockSuggestionRepository{})

	suggestion := pendingSuggestion(0, testNow.AddDate(0, 0, 7), testNow)

	_, err := svc.CreateSuggestion(context.Background(), suggestion)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestSuggestionService_CreateSuggestion_ItemOutsideRange(t *testing.T) {
	svc := newTestSuggestionService(&mockSuggestionRepository{})

	start := testNow.AddDate(0, 0, 1)
	end := testNow.AddDate(0, 0, 7)
	suggestion := pendingSuggestion(0, start, end)
	suggestion.Items[0].Date = end.AddDate(0, 0, 1)

	_, err := svc.CreateSuggestion(context.Background(), suggestion)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestSuggestionService_CreateSuggestion_BadMealType(t *testing.T) {
	svc := newTestSuggestionService(&mockSuggestionRepository{})

	start := testNow.AddDate(0, 0, 1)
	suggestion := pendingSuggestion(0, start, testNow.AddDate(0, 0, 7))
	suggestion.Items[0].MealType = "brunch"

	_, err := svc.CreateSuggestion(context.Background(), suggestion)
	assert.ErrorIs(t, err, ErrInvalidMealType)
}

// ─────────────────────────────────────────────
// GetSuggestions
// ─────────────────────────────────────────────

func TestSuggestionService_GetSuggestions_PassesClock(t *testing.T) {
	var gotNotExpiredOn time.Time
	repo := &mockSuggestionRepository{
		getSuggestionsFn: func(ctx context.Context, status models.SuggestionStatus, notExpiredOn time.Time) ([]models.MenuSuggestion, error) {
			gotNotExpiredOn = notExpiredOn
			return []models.MenuSuggestion{{SuggestionID: 1}}, nil
		},
	}
	svc := newTestSuggestionService(repo)

	got, err := svc.GetSuggestions(context.Background(), models.SuggestionPending)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, testNow, gotNotExpiredOn)
}

// ─────────────────────────────────────────────
// AcceptSuggestion
// ─────────────────────────────────────────────

func TestSuggestionService_AcceptSuggestion_Success(t *testing.T) {
	start := testNow.AddDate(0, 0, 1)
	end := testNow.AddDate(0, 0, 7)

	repo := &mockSuggestionRepository{
		getSuggestionFn: func(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error) {
			return pendingSuggestion(suggestionID, start, end), nil
		},
		acceptSuggestionFn: func(ctx context.Context, suggestionID, actingUserID int64) (models.MenuSuggestion, error) {
			acceptedAt := testNow
			s := pendingSuggestion(suggestionID, start, end)
			s.Status = models.SuggestionAccepted
			s.AcceptedAt = &acceptedAt
			return s, nil
		},
	}
	svc := newTestSuggestionService(repo)

	got, err := svc.AcceptSuggestion(context.Background(), 1, 13)
	require.NoError(t, err)
	assert.Equal(t, models.SuggestionAccepted, got.Status)
	require.NotNil(t, got.AcceptedAt)
	assert.Equal(t, testNow, *got.AcceptedAt)
}

func TestSuggestionService_AcceptSuggestion_NotFound(t *testing.T) {
	repo := &mockSuggestionRepository{
		getSuggestionFn: func(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error) {
			return models.MenuSuggestion{}, store.ErrSuggestionNotFound
		},
	}
	svc := newTestSuggestionService(repo)

	_, err := svc.AcceptSuggestion(context.Background(), 404, 13)
	assert.ErrorIs(t, err, store.ErrSuggestionNotFound)
}

func TestSuggestionService_AcceptSuggestion_AlreadyDecided(t *testing.T) {
	repo := &mockSuggestionRepository{
		getSuggestionFn: func(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error) {
			s := pendingSuggestion(suggestionID, testNow, testNow.AddDate(0, 0, 7))
			s.Status = models.SuggestionAccepted
			return s, nil
		},
	}
	svc := newTestSuggestionService(repo)

	_, err := svc.AcceptSuggestion(context.Background(), 1, 13)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSuggestionService_AcceptSuggestion_Expired(t *testing.T) {
	acceptCalled := false
	repo := &mockSuggestionRepository{
		getSuggestionFn: func(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error) {
			// end date a week before the pinned clock
			return pendingSuggestion(suggestionID, testNow.AddDate(0, 0, -14), testNow.AddDate(0, 0, -7)), nil
		},
		acceptSuggestionFn: func(ctx context.Context, suggestionID, actingUserID int64) (models.MenuSuggestion, error) {
			acceptCalled = true
			return models.MenuSuggestion{}, nil
		},
	}
	svc := newTestSuggestionService(repo)

	_, err := svc.AcceptSuggestion(context.Background(), 1, 13)
	assert.ErrorIs(t, err, ErrSuggestionExpired)
	assert.False(t, acceptCalled, "expired suggestion must never reach the transactional accept")
}

func TestSuggestionService_AcceptSuggestion_LostRace(t *testing.T) {
	// pre-check sees PENDING, but a concurrent accept wins the row lock first
	repo := &mockSuggestionRepository{
		getSuggestionFn: func(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error) {
			return pendingSuggestion(suggestionID, testNow, testNow.AddDate(0, 0, 7)), nil
		},
		acceptSuggestionFn: func(ctx context.Context, suggestionID, actingUserID int64) (models.MenuSuggestion, error) {
			return models.MenuSuggestion{}, store.ErrSuggestionNotPending
		},
	}
	svc := newTestSuggestionService(repo)

	_, err := svc.AcceptSuggestion(context.Background(), 1, 13)
	assert.ErrorIs(t, err, ErrInvalidState)
}

// ─────────────────────────────────────────────
// RejectSuggestion
// ─────────────────────────────────────────────

func TestSuggestionService_RejectSuggestion_Success(t *testing.T) {
	repo := &mockSuggestionRepository{}
	svc := newTestSuggestionService(repo)

	assert.NoError(t, svc.RejectSuggestion(context.Background(), 1))
}

func TestSuggestionService_RejectSuggestion_AlreadyDecided(t *testing.T) {
	repo := &mockSuggestionRepository{
		rejectSuggestionFn: func(ctx context.Context, suggestionID int64) error {
			return store.ErrSuggestionNotPending
		},
	}
	svc := newTestSuggestionService(repo)

	assert.ErrorIs(t, svc.RejectSuggestion(context.Background(), 1), ErrInvalidState)
}

func TestSuggestionService_RejectSuggestion_NotFound(t *testing.T) {
	repo := &mockSuggestionRepository{
		rejectSuggestionFn: func(ctx context.Context, suggestionID int64) error {
			return store.ErrSuggestionNotFound
		},
	}
	svc := newTestSuggestionService(repo)

	assert.ErrorIs(t, svc.RejectSuggestion(context.Background(), 404), store.ErrSuggestionNotFound)
}
