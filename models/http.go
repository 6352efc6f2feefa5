package models

// RegisterRequest is the inbound payload for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=STUDENT MESS_STAFF ADMIN"`
}

// LoginRequest is the inbound payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token together with the user snapshot the
// client persists as its credential.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateUserRequest is the inbound payload for PUT /api/users/{id}.
// Email is immutable on the admin side; only the display name and role can
// change. Users change their own email through PUT /api/auth/profile.
type UpdateUserRequest struct {
	Name string `json:"name" validate:"required"`
	Role Role   `json:"role" validate:"required,oneof=STUDENT MESS_STAFF ADMIN"`
}

// UpdateProfileRequest is the inbound payload for PUT /api/auth/profile: the
// principal's self-service update of display name and/or email. Both fields
// are optional but at least one must be present; the handler enforces that.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=1"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ChangePasswordRequest is the inbound payload for
// POST /api/auth/change-password. The current password is re-verified before
// the new one is stored.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// SuggestionRequest is the inbound payload for POST /api/menu-suggestions:
// a proposed batch of menu entries produced by an external generator.
// Dates travel as "2006-01-02" strings.
type SuggestionRequest struct {
	StartDate string                  `json:"start_date" validate:"required"`
	EndDate   string                  `json:"end_date" validate:"required"`
	Items     []SuggestionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SuggestionItemRequest is one proposed entry inside a SuggestionRequest.
type SuggestionItemRequest struct {
	Date            string  `json:"date" validate:"required"`
	MealType        string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
	FoodItemID      int64   `json:"food_item_id" validate:"required"`
	PlannedQuantity float64 `json:"planned_quantity" validate:"gt=0"`
}

// MenuEntryRequest is the inbound payload for POST /api/menu: a direct
// admin edit of one menu plan slot.
type MenuEntryRequest struct {
	Date            string  `json:"date" validate:"required"`
	MealType        string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
	FoodItemID      int64   `json:"food_item_id" validate:"required"`
	PlannedQuantity float64 `json:"planned_quantity" validate:"gt=0"`
}

// FoodItemRequest is the inbound payload for POST /api/food-items.
type FoodItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Unit     string `json:"unit" validate:"required"`
}

// ConsumptionRequest is the inbound payload for POST /api/consumption.
type ConsumptionRequest struct {
	FoodItemID int64   `json:"food_item_id" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"gt=0"`
	Date       string  `json:"date" validate:"required"`
	MealType   string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
}

// WasteRequest is the inbound payload for POST /api/waste.
type WasteRequest struct {
	FoodItemID int64   `json:"food_item_id" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"gt=0"`
	Date       string  `json:"date" validate:"required"`
	MealType   string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
}

// FeedbackRequest is the inbound payload for POST /api/feedback.
type FeedbackRequest struct {
	MealDate string `json:"meal_date" validate:"required"`
	MealType string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// HolidayRequest is the inbound payload for POST /api/holiday-schedule.
type HolidayRequest struct {
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Description string `json:"description"`
}

// AcceptSuggestionRequest identifies the acting admin for an accept/reject
// transition. The suggestion id travels in the URL.
type AcceptSuggestionRequest struct {
	ActingUserID int64 `json:"acting_user_id"`
}

// AcceptedRange is the outbound payload of a successful suggestion
// acceptance: the date range that was materialized into the menu plan.
type AcceptedRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// APIError is the structured error payload returned on every failed request:
// {statusCode, message, errorCode}.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	ErrorCode  string `json:"errorCode"`
}

// Error implements the error interface so APIError can travel through
// error-returning call chains on the client side.
func (e APIError) Error() string {
	return e.Message
}

// Error codes used in APIError payloads.
const (
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeForbidden         = "FORBIDDEN"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeConflictError     = "CONFLICT_ERROR"
	CodeInvalidState      = "INVALID_STATE"
	CodeSuggestionExpired = "SUGGESTION_EXPIRED"
	CodeDatabaseError     = "DATABASE_ERROR"
)
