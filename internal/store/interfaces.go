package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mess-manager/models"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists and retrieves user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	GetAllUsers(ctx context.Context, role models.Role) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error

	// UpdateProfile is the self-service update of name and email; role and
	// password are untouched.
	UpdateProfile(ctx context.Context, userID int64, name, email string) (models.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error

	GetAdminDashboard(ctx context.Context) (models.AdminDashboard, error)
}

// SuggestionRepository persists menu suggestions and drives their
// PENDING → ACCEPTED / REJECTED transitions.
type SuggestionRepository interface {
	CreateSuggestion(ctx context.Context, suggestion models.MenuSuggestion) (models.MenuSuggestion, error)
	GetSuggestion(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error)
	GetSuggestions(ctx context.Context, status models.SuggestionStatus, notExpiredOn time.Time) ([]models.MenuSuggestion, error)

	// AcceptSuggestion atomically materializes all suggestion items into the
	// menu plan and flips the status to ACCEPTED. Either every entry is
	// inserted and the status updated, or nothing changes.
	AcceptSuggestion(ctx context.Context, suggestionID int64, actingUserID int64) (models.MenuSuggestion, error)

	RejectSuggestion(ctx context.Context, suggestionID int64) error
}

// MenuRepository reads and writes the live menu plan and the food item
// catalog.
type MenuRepository interface {
	GetMenuForRange(ctx context.Context, from, to time.Time) ([]models.Menu, error)
	CreateMenuEntry(ctx context.Context, entry models.MenuPlanEntry) (models.MenuPlanEntry, error)
	DeleteMenuEntry(ctx context.Context, entryID int64) error

	CreateFoodItem(ctx context.Context, item models.FoodItem) (models.FoodItem, error)
	GetAllFoodItems(ctx context.Context) ([]models.FoodItem, error)
	GetFoodItemByID(ctx context.Context, foodItemID int64) (models.FoodItem, error)
}

// RecordsRepository persists operational records: consumption, waste,
// feedback, and holiday schedules.
type RecordsRepository interface {
	SaveConsumption(ctx context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error)
	GetConsumption(ctx context.Context, from, to time.Time) ([]models.ConsumptionRecord, error)

	SaveWaste(ctx context.Context, record models.WasteRecord) (models.WasteRecord, error)
	GetWasteReport(ctx context.Context, from, to time.Time) ([]models.WasteReportRow, error)

	SaveFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error)
	GetFeedback(ctx context.Context, from, to time.Time) ([]models.Feedback, error)

	SaveHoliday(ctx context.Context, holiday models.HolidaySchedule) (models.HolidaySchedule, error)
	GetHolidays(ctx context.Context) ([]models.HolidaySchedule, error)
	DeleteHoliday(ctx context.Context, scheduleID int64) error
}
