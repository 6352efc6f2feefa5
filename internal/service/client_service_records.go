package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-mess-manager/internal/adapter"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
)

// clientRecordsService submits feedback and operational records through the
// server adapter.
type clientRecordsService struct {
	sessions ClientSessionService
	adapter  adapter.ServerAdapter
	logger   *logger.Logger
}

// NewClientRecordsService constructs a ClientRecordsService.
func NewClientRecordsService(sessions ClientSessionService, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientRecordsService {
	return &clientRecordsService{sessions: sessions, adapter: serverAdapter, logger: logger}
}

// SubmitFeedback implements ClientRecordsService. Input bounds are checked
// locally so an obviously bad rating never leaves the client.
func (c *clientRecordsService) SubmitFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error) {
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return models.Feedback{}, ErrInvalidRating
	}
	if !models.ValidMealType(feedback.MealType) {
		return models.Feedback{}, ErrInvalidMealType
	}
	if err := c.requireSession(ctx); err != nil {
		return models.Feedback{}, err
	}

	saved, err := c.adapter.SubmitFeedback(ctx, feedback)
	if err != nil {
		return models.Feedback{}, c.mapBusinessError(ctx, err)
	}
	return saved, nil
}

// RecordConsumption implements ClientRecordsService.
func (c *clientRecordsService) RecordConsumption(ctx context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error) {
	if record.Quantity <= 0 {
		return models.ConsumptionRecord{}, ErrInvalidQuantity
	}
	if !models.ValidMealType(record.MealType) {
		return models.ConsumptionRecord{}, ErrInvalidMealType
	}
	if err := c.requireSession(ctx); err != nil {
		return models.ConsumptionRecord{}, err
	}

	saved, err := c.adapter.RecordConsumption(ctx, record)
	if err != nil {
		return models.ConsumptionRecord{}, c.mapBusinessError(ctx, err)
	}
	return saved, nil
}

// RecordWaste implements ClientRecordsService.
func (c *clientRecordsService) RecordWaste(ctx context.Context, record models.WasteRecord) (models.WasteRecord, error) {
	if record.Quantity <= 0 {
		return models.WasteRecord{}, ErrInvalidQuantity
	}
	if !models.ValidMealType(record.MealType) {
		return models.WasteRecord{}, ErrInvalidMealType
	}
	if err := c.requireSession(ctx); err != nil {
		return models.WasteRecord{}, err
	}

	saved, err := c.adapter.RecordWaste(ctx, record)
	if err != nil {
		return models.WasteRecord{}, c.mapBusinessError(ctx, err)
	}
	return saved, nil
}

func (c *clientRecordsService) requireSession(ctx context.Context) error {
	_, state, err := c.sessions.Session(ctx)
	if state == models.SessionAbsent {
		if err != nil {
			return err
		}
		return ErrNotAuthenticated
	}
	return nil
}

func (c *clientRecordsService) mapBusinessError(ctx context.Context, err error) error {
	if errors.Is(err, adapter.ErrUnauthorized) {
		_ = c.sessions.Invalidate(ctx)
	}
	return mapAdapterError(err)
}
