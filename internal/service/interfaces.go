package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mess-manager/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// VerifyToken validates the signed token and re-reads the principal from
	// the user store, so role changes and deleted accounts take effect on the
	// very next request rather than at token expiry.
	VerifyToken(ctx context.Context, tokenString string) (models.User, error)

	// UpdateProfile is the principal's self-service change of name and/or
	// email; role and password are out of its reach.
	UpdateProfile(ctx context.Context, userID int64, request models.UpdateProfileRequest) (models.User, error)

	// ChangePassword re-verifies the current password before storing the new
	// hash; a mismatch yields ErrWrongPassword.
	ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error
}

type UserService interface {
	GetUsers(ctx context.Context, role models.Role) ([]models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	GetAdminDashboard(ctx context.Context) (models.AdminDashboard, error)
}

type SuggestionService interface {
	CreateSuggestion(ctx context.Context, suggestion models.MenuSuggestion) (models.MenuSuggestion, error)
	GetSuggestion(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error)
	GetSuggestions(ctx context.Context, status models.SuggestionStatus) ([]models.MenuSuggestion, error)
	AcceptSuggestion(ctx context.Context, suggestionID int64, actingUserID int64) (models.MenuSuggestion, error)
	RejectSuggestion(ctx context.Context, suggestionID int64) error
}

type MenuService interface {
	GetMenu(ctx context.Context, from, to time.Time) ([]models.Menu, error)
	GetTodayMenu(ctx context.Context) (models.Menu, error)
	CreateMenuEntry(ctx context.Context, entry models.MenuPlanEntry) (models.MenuPlanEntry, error)
	DeleteMenuEntry(ctx context.Context, entryID int64) error

	CreateFoodItem(ctx context.Context, item models.FoodItem) (models.FoodItem, error)
	GetFoodItems(ctx context.Context) ([]models.FoodItem, error)
}

type RecordsService interface {
	RecordConsumption(ctx context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error)
	GetConsumption(ctx context.Context, from, to time.Time) ([]models.ConsumptionRecord, error)

	RecordWaste(ctx context.Context, record models.WasteRecord) (models.WasteRecord, error)
	GetWasteReport(ctx context.Context, from, to time.Time) ([]models.WasteReportRow, error)

	SubmitFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error)
	GetFeedback(ctx context.Context, from, to time.Time) ([]models.Feedback, error)

	CreateHoliday(ctx context.Context, holiday models.HolidaySchedule) (models.HolidaySchedule, error)
	GetHolidays(ctx context.Context) ([]models.HolidaySchedule, error)
	DeleteHoliday(ctx context.Context, scheduleID int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
