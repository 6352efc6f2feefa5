package models

import "time"

// Meal types as stored in menu, consumption, and feedback rows.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
)

// ValidMealType reports whether mealType is one of the known meal slots.
func ValidMealType(mealType string) bool {
	switch mealType {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// FoodItem is a dish or ingredient the mess serves.
type FoodItem struct {
	FoodItemID int64     `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Unit       string    `json:"unit"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table associated with FoodItem.
func (f FoodItem) TableName() string {
	return "food_items"
}

// MenuPlanEntry is a committed, live menu item for a specific date and meal.
// Entries are created transactionally during suggestion acceptance or by
// direct admin menu edits, and are visible to all roles via menu queries.
type MenuPlanEntry struct {
	EntryID         int64     `json:"id"`
	Date            time.Time `json:"date"`
	MealType        string    `json:"meal_type"`
	FoodItemID      int64     `json:"food_item_id"`
	PlannedQuantity float64   `json:"planned_quantity"`
	CreatedBy       int64     `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the database table associated with MenuPlanEntry.
func (m MenuPlanEntry) TableName() string {
	return "menu_plan"
}

// MenuItem is a food item joined with its meal slot, as served in menu
// responses.
type MenuItem struct {
	FoodItemID int64  `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	MealType   string `json:"meal_type"`
}

// Menu is one day's plan grouped by meal slot.
type Menu struct {
	Date      string     `json:"date"`
	Breakfast []MenuItem `json:"breakfast"`
	Lunch     []MenuItem `json:"lunch"`
	Dinner    []MenuItem `json:"dinner"`
}
