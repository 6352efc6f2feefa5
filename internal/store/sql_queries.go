// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-mess-manager/models"
)

const (
	createUser = `INSERT INTO users (email, password_hash, name, role)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, email, password_hash, name, role, created_at, updated_at;`

	findUserByEmail = `SELECT user_id, email, password_hash, name, role, created_at, updated_at
    FROM users
    WHERE email = $1;`

	getUserByID = `SELECT user_id, email, password_hash, name, role, created_at, updated_at
    FROM users
    WHERE user_id = $1;`

	updateUser = `UPDATE users
    SET name = $2, role = $3, updated_at = NOW()
    WHERE user_id = $1
    RETURNING user_id, email, password_hash, name, role, created_at, updated_at;`

	// Self-service counterpart of updateUser: the principal edits name and
	// email, never role.
	updateUserProfile = `UPDATE users
    SET name = $2, email = $3, updated_at = NOW()
    WHERE user_id = $1
    RETURNING user_id, email, password_hash, name, role, created_at, updated_at;`

	updateUserPassword = `UPDATE users
    SET password_hash = $2, updated_at = NOW()
    WHERE user_id = $1;`

	adminDashboardStats = `SELECT
      (SELECT COUNT(*) FROM users WHERE role = 'ADMIN')      AS admin_count,
      (SELECT COUNT(*) FROM users WHERE role = 'MESS_STAFF') AS staff_count,
      (SELECT COUNT(*) FROM users WHERE role = 'STUDENT')    AS student_count,
      (SELECT COUNT(*) FROM consumption_records)             AS total_consumption;`

	deleteUser = `DELETE FROM users WHERE user_id = $1;`

	// Dependent records block user deletion. Meal logs and schedules keep
	// their author reference for auditing.
	countUserDependencies = `SELECT
      (SELECT COUNT(*) FROM holiday_schedule WHERE created_by = $1)
    + (SELECT COUNT(*) FROM consumption_records WHERE recorded_by = $1)
    + (SELECT COUNT(*) FROM waste_records WHERE recorded_by = $1)
    + (SELECT COUNT(*) FROM menu_plan WHERE created_by = $1);`

	createSuggestion = `INSERT INTO menu_suggestions (start_date, end_date, status)
    VALUES ($1, $2, $3)
    RETURNING suggestion_id, suggested_at;`

	createSuggestionItem = `INSERT INTO menu_suggestion_items (suggestion_id, date, meal_type, food_item_id, planned_quantity, position)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING item_id;`

	getSuggestionByID = `SELECT suggestion_id, start_date, end_date, status, suggested_at, accepted_at
    FROM menu_suggestions
    WHERE suggestion_id = $1;`

	getSuggestionItems = `SELECT item_id, suggestion_id, date, meal_type, food_item_id, planned_quantity, position
    FROM menu_suggestion_items
    WHERE suggestion_id = $1
    ORDER BY position;`

	// Row lock serializes concurrent accept/reject attempts on one suggestion.
	selectSuggestionForUpdate = `SELECT suggestion_id, start_date, end_date, status, suggested_at, accepted_at
    FROM menu_suggestions
    WHERE suggestion_id = $1
    FOR UPDATE;`

	insertMenuPlanEntry = `INSERT INTO menu_plan (date, meal_type, food_item_id, planned_quantity, created_by)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING entry_id, created_at;`

	deleteMenuPlanEntry = `DELETE FROM menu_plan WHERE entry_id = $1;`

	// Status guard keeps the transition one-way even outside the row lock.
	acceptSuggestion = `UPDATE menu_suggestions
    SET status = 'ACCEPTED', accepted_at = NOW()
    WHERE suggestion_id = $1 AND status = 'PENDING'
    RETURNING accepted_at;`

	rejectSuggestion = `UPDATE menu_suggestions
    SET status = 'REJECTED'
    WHERE suggestion_id = $1 AND status = 'PENDING';`

	createFoodItem = `INSERT INTO food_items (name, category, unit)
    VALUES ($1, $2, $3)
    RETURNING food_item_id, name, category, unit, created_at;`

	getFoodItemByID = `SELECT food_item_id, name, category, unit, created_at
    FROM food_items
    WHERE food_item_id = $1;`

	saveConsumption = `INSERT INTO consumption_records (food_item_id, quantity, date, meal_type, recorded_by)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING record_id, created_at;`

	saveWaste = `INSERT INTO waste_records (food_item_id, quantity, date, meal_type, recorded_by)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING record_id, created_at;`

	saveFeedback = `INSERT INTO feedback (student_id, meal_date, meal_type, rating, comment)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING feedback_id, created_at;`

	saveHoliday = `INSERT INTO holiday_schedule (start_date, end_date, description, created_by)
    VALUES ($1, $2, $3, $4)
    RETURNING schedule_id, created_at;`

	getHolidays = `SELECT schedule_id, start_date, end_date, description, created_by, created_at
    FROM holiday_schedule
    ORDER BY start_date;`

	deleteHoliday = `DELETE FROM holiday_schedule WHERE schedule_id = $1;`
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// positional placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildSelectUsersQuery builds the user listing query. When role is non-empty
// the result is narrowed to accounts holding that role.
func buildSelectUsersQuery(_ context.Context, role models.Role) (string, []any, error) {
	builder := psql.
		Select("user_id", "email", "password_hash", "name", "role", "created_at", "updated_at").
		From("users").
		OrderBy("user_id")

	if role != "" {
		builder = builder.Where(sq.Eq{"role": role})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectSuggestionsQuery builds the suggestion listing query.
//
// When status is non-empty the list is narrowed to that status. When
// notExpiredOn is non-zero, PENDING listings additionally drop suggestions
// whose end date already passed; accepted and rejected history is not
// filtered by date.
func buildSelectSuggestionsQuery(_ context.Context, status models.SuggestionStatus, notExpiredOn time.Time) (string, []any, error) {
	builder := psql.
		Select("suggestion_id", "start_date", "end_date", "status", "suggested_at", "accepted_at").
		From("menu_suggestions").
		OrderBy("suggested_at DESC")

	if status != "" {
		builder = builder.Where(sq.Eq{"status": status})
	}

	if !notExpiredOn.IsZero() {
		y, m, d := notExpiredOn.Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		builder = builder.Where(sq.Or{
			sq.NotEq{"status": models.SuggestionPending},
			sq.GtOrEq{"end_date": today},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectMenuRangeQuery builds the live menu query for a date range,
// joining plan entries with the food item catalog.
func buildSelectMenuRangeQuery(_ context.Context, from, to time.Time) (string, []any, error) {
	builder := psql.
		Select("mp.date", "mp.meal_type", "fi.food_item_id", "fi.name", "fi.category").
		From("menu_plan mp").
		Join("food_items fi ON fi.food_item_id = mp.food_item_id").
		Where(sq.GtOrEq{"mp.date": from}).
		Where(sq.LtOrEq{"mp.date": to}).
		OrderBy("mp.date", "mp.meal_type", "mp.entry_id")

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildWasteReportQuery builds the aggregated waste report: total wasted
// quantity per food item name over a date range, largest first.
func buildWasteReportQuery(_ context.Context, from, to time.Time) (string, []any, error) {
	builder := psql.
		Select("fi.name", "SUM(wr.quantity) AS total_waste").
		From("waste_records wr").
		Join("food_items fi ON fi.food_item_id = wr.food_item_id").
		Where(sq.GtOrEq{"wr.date": from}).
		Where(sq.LtOrEq{"wr.date": to}).
		GroupBy("fi.name").
		OrderBy("total_waste DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectConsumptionQuery builds the consumption listing query for a
// date range.
func buildSelectConsumptionQuery(_ context.Context, from, to time.Time) (string, []any, error) {
	builder := psql.
		Select("record_id", "food_item_id", "quantity", "date", "meal_type", "recorded_by", "created_at").
		From("consumption_records").
		Where(sq.GtOrEq{"date": from}).
		Where(sq.LtOrEq{"date": to}).
		OrderBy("date", "meal_type")

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectFeedbackQuery builds the feedback listing query for a date range.
func buildSelectFeedbackQuery(_ context.Context, from, to time.Time) (string, []any, error) {
	builder := psql.
		Select("feedback_id", "student_id", "meal_date", "meal_type", "rating", "comment", "created_at").
		From("feedback").
		Where(sq.GtOrEq{"meal_date": from}).
		Where(sq.LtOrEq{"meal_date": to}).
		OrderBy("meal_date DESC", "feedback_id DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectFoodItemsQuery builds the full food item catalog query.
func buildSelectFoodItemsQuery(_ context.Context) (string, []any, error) {
	builder := psql.
		Select("food_item_id", "name", "category", "unit", "created_at").
		From("food_items").
		OrderBy("name")

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
