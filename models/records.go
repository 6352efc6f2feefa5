package models

import "time"

// ConsumptionRecord logs how much of a food item was actually served.
type ConsumptionRecord struct {
	RecordID   int64     `json:"id"`
	FoodItemID int64     `json:"food_item_id"`
	Quantity   float64   `json:"quantity"`
	Date       time.Time `json:"date"`
	MealType   string    `json:"meal_type"`
	RecordedBy int64     `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table associated with ConsumptionRecord.
func (c ConsumptionRecord) TableName() string {
	return "consumption_records"
}

// WasteRecord logs leftover quantities per food item and meal.
type WasteRecord struct {
	RecordID   int64     `json:"id"`
	FoodItemID int64     `json:"food_item_id"`
	Quantity   float64   `json:"quantity"`
	Date       time.Time `json:"date"`
	MealType   string    `json:"meal_type"`
	RecordedBy int64     `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table associated with WasteRecord.
func (w WasteRecord) TableName() string {
	return "waste_records"
}

// WasteReportRow is one aggregated line of the waste report:
// total wasted quantity per food item over a date range.
type WasteReportRow struct {
	FoodItemName string  `json:"name"`
	TotalWaste   float64 `json:"total_waste"`
}

// Feedback is a student's rating of one meal.
type Feedback struct {
	FeedbackID int64     `json:"id"`
	StudentID  int64     `json:"student_id"`
	MealDate   time.Time `json:"meal_date"`
	MealType   string    `json:"meal_type"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table associated with Feedback.
func (f Feedback) TableName() string {
	return "feedback"
}

// HolidaySchedule marks a date range on which the mess is closed.
type HolidaySchedule struct {
	ScheduleID  int64     `json:"id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table associated with HolidaySchedule.
func (h HolidaySchedule) TableName() string {
	return "holiday_schedule"
}
