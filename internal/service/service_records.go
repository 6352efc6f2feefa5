package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/store"
	"github.com/MKhiriev/go-mess-manager/models"
)

// recordsService is the concrete implementation of RecordsService.
type recordsService struct {
	recordsRepository store.RecordsRepository
	logger            *logger.Logger
}

// NewRecordsService constructs a RecordsService backed by the provided
// repository.
func NewRecordsService(recordsRepository store.RecordsRepository, logger *logger.Logger) RecordsService {
	return &recordsService{
		recordsRepository: recordsRepository,
		logger:            logger,
	}
}

// RecordConsumption logs a served quantity for a food item.
func (s *recordsService) RecordConsumption(ctx context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error) {
	log := logger.FromContext(ctx)

	if !models.ValidMealType(record.MealType) {
		return models.ConsumptionRecord{}, ErrInvalidMealType
	}
	if record.Quantity <= 0 {
		return models.ConsumptionRecord{}, ErrInvalidQuantity
	}

	saved, err := s.recordsRepository.SaveConsumption(ctx, record)
	if err != nil {
		log.Err(err).Int64("food_item_id", record.FoodItemID).Msg("consumption record ended with error")
		return models.ConsumptionRecord{}, fmt.Errorf("consumption record ended with error: %w", err)
	}

	return saved, nil
}

// GetConsumption lists consumption records inside a date range.
func (s *recordsService) GetConsumption(ctx context.Context, from, to time.Time) ([]models.ConsumptionRecord, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	return s.recordsRepository.GetConsumption(ctx, from, to)
}

// RecordWaste logs a leftover quantity for a food item.
func (s *recordsService) RecordWaste(ctx context.Context, record models.WasteRecord) (models.WasteRecord, error) {
	log := logger.FromContext(ctx)

	if !models.ValidMealType(record.MealType) {
		return models.WasteRecord{}, ErrInvalidMealType
	}
	if record.Quantity <= 0 {
		return models.WasteRecord{}, ErrInvalidQuantity
	}

	saved, err := s.recordsRepository.SaveWaste(ctx, record)
	if err != nil {
		log.Err(err).Int64("food_item_id", record.FoodItemID).Msg("waste record ended with error")
		return models.WasteRecord{}, fmt.Errorf("waste record ended with error: %w", err)
	}

	return saved, nil
}

// GetWasteReport aggregates wasted quantity per food item over a date range.
func (s *recordsService) GetWasteReport(ctx context.Context, from, to time.Time) ([]models.WasteReportRow, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	return s.recordsRepository.GetWasteReport(ctx, from, to)
}

// SubmitFeedback stores a student's meal rating.
func (s *recordsService) SubmitFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error) {
	log := logger.FromContext(ctx)

	if !models.ValidMealType(feedback.MealType) {
		return models.Feedback{}, ErrInvalidMealType
	}
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return models.Feedback{}, ErrInvalidRating
	}

	saved, err := s.recordsRepository.SaveFeedback(ctx, feedback)
	if err != nil {
		log.Err(err).Int64("student_id", feedback.StudentID).Msg("feedback submission ended with error")
		return models.Feedback{}, fmt.Errorf("feedback submission ended with error: %w", err)
	}

	return saved, nil
}

// GetFeedback lists feedback inside a date range.
func (s *recordsService) GetFeedback(ctx context.Context, from, to time.Time) ([]models.Feedback, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	return s.recordsRepository.GetFeedback(ctx, from, to)
}

// CreateHoliday stores a mess closure date range.
func (s *recordsService) CreateHoliday(ctx context.Context, holiday models.HolidaySchedule) (models.HolidaySchedule, error) {
	if holiday.EndDate.Before(holiday.StartDate) {
		return models.HolidaySchedule{}, ErrInvalidDateRange
	}

	return s.recordsRepository.SaveHoliday(ctx, holiday)
}

// GetHolidays lists all closure ranges.
func (s *recordsService) GetHolidays(ctx context.Context) ([]models.HolidaySchedule, error) {
	return s.recordsRepository.GetHolidays(ctx)
}

// DeleteHoliday removes a closure range.
func (s *recordsService) DeleteHoliday(ctx context.Context, scheduleID int64) error {
	return s.recordsRepository.DeleteHoliday(ctx, scheduleID)
}
