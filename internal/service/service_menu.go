package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/store"
	"github.com/MKhiriev/go-mess-manager/models"
)

// menuService is the concrete implementation of MenuService.
type menuService struct {
	menuRepository store.MenuRepository
	logger         *logger.Logger

	now func() time.Time
}

// NewMenuService constructs a MenuService backed by the provided repository.
func NewMenuService(menuRepository store.MenuRepository, logger *logger.Logger) MenuService {
	return &menuService{
		menuRepository: menuRepository,
		logger:         logger,
		now:            time.Now,
	}
}

// GetMenu returns the live menu for every day in [from, to].
func (s *menuService) GetMenu(ctx context.Context, from, to time.Time) ([]models.Menu, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	return s.menuRepository.GetMenuForRange(ctx, from, to)
}

// GetTodayMenu returns the menu for the current date. A day with no plan
// entries yields a menu with the date set and every slot empty.
func (s *menuService) GetTodayMenu(ctx context.Context) (models.Menu, error) {
	now := s.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	menus, err := s.menuRepository.GetMenuForRange(ctx, today, today)
	if err != nil {
		return models.Menu{}, err
	}

	if len(menus) == 0 {
		return models.Menu{Date: today.Format("2006-01-02")}, nil
	}

	return menus[0], nil
}

// CreateMenuEntry adds a single plan entry outside the suggestion workflow
// (direct admin edit).
func (s *menuService) CreateMenuEntry(ctx context.Context, entry models.MenuPlanEntry) (models.MenuPlanEntry, error) {
	log := logger.FromContext(ctx)

	if !models.ValidMealType(entry.MealType) {
		return models.MenuPlanEntry{}, ErrInvalidMealType
	}
	if entry.PlannedQuantity < 0 {
		return models.MenuPlanEntry{}, ErrInvalidQuantity
	}

	created, err := s.menuRepository.CreateMenuEntry(ctx, entry)
	if err != nil {
		log.Err(err).Int64("food_item_id", entry.FoodItemID).Msg("menu entry creation ended with error")
		return models.MenuPlanEntry{}, fmt.Errorf("menu entry creation ended with error: %w", err)
	}

	return created, nil
}

// DeleteMenuEntry removes a single plan entry.
func (s *menuService) DeleteMenuEntry(ctx context.Context, entryID int64) error {
	return s.menuRepository.DeleteMenuEntry(ctx, entryID)
}

// CreateFoodItem adds a new dish to the catalog.
func (s *menuService) CreateFoodItem(ctx context.Context, item models.FoodItem) (models.FoodItem, error) {
	if item.Name == "" {
		return models.FoodItem{}, ErrInvalidDataProvided
	}

	return s.menuRepository.CreateFoodItem(ctx, item)
}

// GetFoodItems returns the full catalog.
func (s *menuService) GetFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	return s.menuRepository.GetAllFoodItems(ctx)
}
