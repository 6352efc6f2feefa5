package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/jackc/pgerrcode"
)

// menuRepository is the PostgreSQL-backed implementation of [MenuRepository].
// It owns the "menu_plan" and "food_items" tables.
type menuRepository struct {
	*DB
	logger *logger.Logger
}

// NewMenuRepository constructs a [MenuRepository] backed by the provided
// database connection and logger.
func NewMenuRepository(db *DB, logger *logger.Logger) MenuRepository {
	return &menuRepository{
		DB:     db,
		logger: logger,
	}
}

// GetMenuForRange returns one [models.Menu] per day in [from, to], grouped by
// meal slot. Days with no plan entries produce a menu with empty slots only
// when they fall inside the requested range and at least one other day has
// entries; fully empty ranges yield an empty slice.
func (m *menuRepository) GetMenuForRange(ctx context.Context, from, to time.Time) ([]models.Menu, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectMenuRangeQuery(ctx, from, to)
	if err != nil {
		log.Err(err).
			Str("func", "menuRepository.GetMenuForRange").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "menuRepository.GetMenuForRange").
			Msg("failed to execute query for menu range")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	menus := make([]models.Menu, 0, 7)
	byDate := make(map[string]int)

	for rows.Next() {
		var date time.Time
		var item models.MenuItem

		scanErr := rows.Scan(&date, &item.MealType, &item.FoodItemID, &item.Name, &item.Category)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "menuRepository.GetMenuForRange").
				Msg("failed to scan menu row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		day := date.Format("2006-01-02")
		idx, ok := byDate[day]
		if !ok {
			menus = append(menus, models.Menu{Date: day})
			idx = len(menus) - 1
			byDate[day] = idx
		}

		switch item.MealType {
		case models.MealBreakfast:
			menus[idx].Breakfast = append(menus[idx].Breakfast, item)
		case models.MealLunch:
			menus[idx].Lunch = append(menus[idx].Lunch, item)
		case models.MealDinner:
			menus[idx].Dinner = append(menus[idx].Dinner, item)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "menuRepository.GetMenuForRange").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return menus, nil
}

// CreateMenuEntry inserts a single live menu plan entry (direct admin edit,
// outside the suggestion workflow). A foreign key violation on the food item
// reference maps to [ErrFoodItemNotFound].
func (m *menuRepository) CreateMenuEntry(ctx context.Context, entry models.MenuPlanEntry) (models.MenuPlanEntry, error) {
	log := logger.FromContext(ctx)

	err := m.DB.QueryRowContext(ctx, insertMenuPlanEntry,
		entry.Date,
		entry.MealType,
		entry.FoodItemID,
		entry.PlannedQuantity,
		entry.CreatedBy,
	).Scan(&entry.EntryID, &entry.CreatedAt)

	if err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.MenuPlanEntry{}, ErrFoodItemNotFound
		}

		log.Err(err).
			Str("func", "menuRepository.CreateMenuEntry").
			Int64("food_item_id", entry.FoodItemID).
			Msg("failed to insert menu plan entry")
		return models.MenuPlanEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}

// DeleteMenuEntry removes a single live menu plan entry.
func (m *menuRepository) DeleteMenuEntry(ctx context.Context, entryID int64) error {
	log := logger.FromContext(ctx)

	result, err := m.DB.ExecContext(ctx, deleteMenuPlanEntry, entryID)
	if err != nil {
		log.Err(err).
			Str("func", "menuRepository.DeleteMenuEntry").
			Int64("entry_id", entryID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFoundMenuEntry
	}

	return nil
}

// CreateFoodItem adds a new dish to the catalog.
func (m *menuRepository) CreateFoodItem(ctx context.Context, item models.FoodItem) (models.FoodItem, error) {
	log := logger.FromContext(ctx)

	err := m.DB.QueryRowContext(ctx, createFoodItem, item.Name, item.Category, item.Unit).
		Scan(&item.FoodItemID, &item.Name, &item.Category, &item.Unit, &item.CreatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "menuRepository.CreateFoodItem").
			Str("name", item.Name).
			Msg("failed to insert food item")
		return models.FoodItem{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

// GetAllFoodItems returns the full catalog ordered by name.
func (m *menuRepository) GetAllFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFoodItemsQuery(ctx)
	if err != nil {
		log.Err(err).
			Str("func", "menuRepository.GetAllFoodItems").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "menuRepository.GetAllFoodItems").
			Msg("failed to execute query for food items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.FoodItem, 0, 50)

	for rows.Next() {
		var item models.FoodItem

		scanErr := rows.Scan(&item.FoodItemID, &item.Name, &item.Category, &item.Unit, &item.CreatedAt)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "menuRepository.GetAllFoodItems").
				Msg("failed to scan food item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "menuRepository.GetAllFoodItems").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// GetFoodItemByID returns a single catalog entry or [ErrFoodItemNotFound].
func (m *menuRepository) GetFoodItemByID(ctx context.Context, foodItemID int64) (models.FoodItem, error) {
	log := logger.FromContext(ctx)

	var item models.FoodItem
	err := m.DB.QueryRowContext(ctx, getFoodItemByID, foodItemID).
		Scan(&item.FoodItemID, &item.Name, &item.Category, &item.Unit, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FoodItem{}, ErrFoodItemNotFound
		}

		log.Err(err).
			Str("func", "menuRepository.GetFoodItemByID").
			Int64("food_item_id", foodItemID).
			Msg("failed to scan food item row")
		return models.FoodItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}
