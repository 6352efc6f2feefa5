package models

import "time"

// SuggestionStatus is the lifecycle state of a menu suggestion.
// Transitions are one-directional: PENDING → ACCEPTED or PENDING → REJECTED,
// both terminal. A non-PENDING suggestion can never be (re-)accepted.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "PENDING"
	SuggestionAccepted SuggestionStatus = "ACCEPTED"
	SuggestionRejected SuggestionStatus = "REJECTED"
)

// MenuSuggestion is a proposed batch of menu plan entries for a date range,
// produced by an external generation process and acted upon by admins only.
type MenuSuggestion struct {
	SuggestionID int64            `json:"id"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	Status       SuggestionStatus `json:"status"`
	SuggestedAt  time.Time        `json:"suggested_at"`

	// AcceptedAt is set when the suggestion transitions to ACCEPTED;
	// nil otherwise.
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`

	// Items is the ordered collection of proposed entries. Populated on
	// single-suggestion reads and on listing.
	Items []SuggestionItem `json:"items,omitempty"`
}

// TableName returns the database table associated with MenuSuggestion.
func (s MenuSuggestion) TableName() string {
	return "menu_suggestions"
}

// ExpiredBy reports whether the suggestion's end date has already passed,
// making it unacceptable as a business rule (distinct from credential expiry).
//
// EndDate comes out of a DATE column as UTC midnight, so "today" is computed
// in UTC as well regardless of the server's zone. A suggestion whose end date
// is the current UTC day is still acceptable.
func (s MenuSuggestion) ExpiredBy(now time.Time) bool {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return s.EndDate.Before(today)
}

// SuggestionItem is one proposed menu entry inside a suggestion.
// Position preserves the generator's ordering.
type SuggestionItem struct {
	ItemID          int64     `json:"id"`
	SuggestionID    int64     `json:"-"`
	Date            time.Time `json:"date"`
	MealType        string    `json:"meal_type"`
	FoodItemID      int64     `json:"food_item_id"`
	PlannedQuantity float64   `json:"planned_quantity"`
	Position        int       `json:"-"`
}

// TableName returns the database table associated with SuggestionItem.
func (s SuggestionItem) TableName() string {
	return "menu_suggestion_items"
}
