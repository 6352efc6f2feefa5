package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/jackc/pgerrcode"
)

// recordsRepository is the PostgreSQL-backed implementation of
// [RecordsRepository]. It owns the "consumption_records", "waste_records",
// "feedback", and "holiday_schedule" tables.
type recordsRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordsRepository constructs a [RecordsRepository] backed by the
// provided database connection and logger.
func NewRecordsRepository(db *DB, logger *logger.Logger) RecordsRepository {
	return &recordsRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveConsumption logs a served quantity for a food item. A foreign key
// violation on the food item reference maps to [ErrFoodItemNotFound].
func (r *recordsRepository) SaveConsumption(ctx context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error) {
	log := logger.FromContext(ctx)

	err := r.DB.QueryRowContext(ctx, saveConsumption,
		record.FoodItemID,
		record.Quantity,
		record.Date,
		record.MealType,
		record.RecordedBy,
	).Scan(&record.RecordID, &record.CreatedAt)

	if err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.ConsumptionRecord{}, ErrFoodItemNotFound
		}

		log.Err(err).
			Str("func", "recordsRepository.SaveConsumption").
			Int64("food_item_id", record.FoodItemID).
			Msg("failed to insert consumption record")
		return models.ConsumptionRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// GetConsumption lists consumption records falling inside [from, to].
func (r *recordsRepository) GetConsumption(ctx context.Context, from, to time.Time) ([]models.ConsumptionRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectConsumptionQuery(ctx, from, to)
	if err != nil {
		log.Err(err).
			Str("func", "recordsRepository.GetConsumption").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordsRepository.GetConsumption").
			Msg("failed to execute query for consumption records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.ConsumptionRecord, 0, 50)

	for rows.Next() {
		var record models.ConsumptionRecord

		scanErr := rows.Scan(
			&record.RecordID,
			&record.FoodItemID,
			&record.Quantity,
			&record.Date,
			&record.MealType,
			&record.RecordedBy,
			&record.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordsRepository.GetConsumption").
				Msg("failed to scan consumption row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordsRepository.GetConsumption").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// SaveWaste logs a leftover quantity for a food item.
func (r *recordsRepository) SaveWaste(ctx context.Context, record models.WasteRecord) (models.WasteRecord, error) {
	log := logger.FromContext(ctx)

	err := r.DB.QueryRowContext(ctx, saveWaste,
		record.FoodItemID,
		record.Quantity,
		record.Date,
		record.MealType,
		record.RecordedBy,
	).Scan(&record.RecordID, &record.CreatedAt)

	if err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.WasteRecord{}, ErrFoodItemNotFound
		}

		log.Err(err).
			Str("func", "recordsRepository.SaveWaste").
			Int64("food_item_id", record.FoodItemID).
			Msg("failed to insert waste record")
		return models.WasteRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// GetWasteReport aggregates total wasted quantity per food item over
// [from, to], largest totals first.
func (r *recordsRepository) GetWasteReport(ctx context.Context, from, to time.Time) ([]models.WasteReportRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildWasteReportQuery(ctx, from, to)
	if err != nil {
		log.Err(err).
			Str("func", "recordsRepository.GetWasteReport").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordsRepository.GetWasteReport").
			Msg("failed to execute query for waste report")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	report := make([]models.WasteReportRow, 0, 50)

	for rows.Next() {
		var row models.WasteReportRow

		scanErr := rows.Scan(&row.FoodItemName, &row.TotalWaste)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordsRepository.GetWasteReport").
				Msg("failed to scan report row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		report = append(report, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordsRepository.GetWasteReport").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return report, nil
}

// SaveFeedback persists a student's rating of one meal.
func (r *recordsRepository) SaveFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error) {
	log := logger.FromContext(ctx)

	err := r.DB.QueryRowContext(ctx, saveFeedback,
		feedback.StudentID,
		feedback.MealDate,
		feedback.MealType,
		feedback.Rating,
		feedback.Comment,
	).Scan(&feedback.FeedbackID, &feedback.CreatedAt)

	if err != nil {
		log.Err(err).
			Str("func", "recordsRepository.SaveFeedback").
			Int64("student_id", feedback.StudentID).
			Msg("failed to insert feedback")
		return models.Feedback{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return feedback, nil
}

// GetFeedback lists feedback whose meal date falls inside [from, to],
// newest first.
func (r *recordsRepository) GetFeedback(ctx context.Context, from, to time.Time) ([]models.Feedback, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFeedbackQuery(ctx, from, to)
	if err != nil {
		log.Err(err).
			Str("func", "recordsRepository.GetFeedback").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordsRepository.GetFeedback").
			Msg("failed to execute query for feedback")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	feedbacks := make([]models.Feedback, 0, 50)

	for rows.Next() {
		var feedback models.Feedback

		scanErr := rows.Scan(
			&feedback.FeedbackID,
			&feedback.StudentID,
			&feedback.MealDate,
			&feedback.MealType,
			&feedback.Rating,
			&feedback.Comment,
			&feedback.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordsRepository.GetFeedback").
				Msg("failed to scan feedback row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		feedbacks = append(feedbacks, feedback)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordsRepository.GetFeedback").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return feedbacks, nil
}

// SaveHoliday persists a mess closure date range.
func (r *recordsRepository) SaveHoliday(ctx context.Context, holiday models.HolidaySchedule) (models.HolidaySchedule, error) {
	log := logger.FromContext(ctx)

	err := r.DB.QueryRowContext(ctx, saveHoliday,
		holiday.StartDate,
		holiday.EndDate,
		holiday.Description,
		holiday.CreatedBy,
	).Scan(&holiday.ScheduleID, &holiday.CreatedAt)

	if err != nil {
		log.Err(err).
			Str("func", "recordsRepository.SaveHoliday").
			Int64("created_by", holiday.CreatedBy).
			Msg("failed to insert holiday schedule")
		return models.HolidaySchedule{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return holiday, nil
}

// GetHolidays lists all closure ranges ordered by start date.
func (r *recordsRepository) GetHolidays(ctx context.Context) ([]models.HolidaySchedule, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getHolidays)
	if err != nil {
		log.Err(err).
			Str("func", "recordsRepository.GetHolidays").
			Msg("failed to execute query for holiday schedules")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	holidays := make([]models.HolidaySchedule, 0, 10)

	for rows.Next() {
		var holiday models.HolidaySchedule

		scanErr := rows.Scan(
			&holiday.ScheduleID,
			&holiday.StartDate,
			&holiday.EndDate,
			&holiday.Description,
			&holiday.CreatedBy,
			&holiday.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordsRepository.GetHolidays").
				Msg("failed to scan holiday row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		holidays = append(holidays, holiday)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordsRepository.GetHolidays").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return holidays, nil
}

// DeleteHoliday removes a closure range.
func (r *recordsRepository) DeleteHoliday(ctx context.Context, scheduleID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteHoliday, scheduleID)
	if err != nil {
		log.Err(err).
			Str("func", "recordsRepository.DeleteHoliday").
			Int64("schedule_id", scheduleID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrHolidayNotFound
	}

	return nil
}
