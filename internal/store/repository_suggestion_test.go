package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/jackc/pgerrcode"
)

func newTestSuggestionRepo(t *testing.T) (*suggestionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &suggestionRepository{
		DB:     forTesting(db, l),
		logger: l,
	}
	return repo, mock, db
}

func suggestionRow(id int64, status models.SuggestionStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.
		NewRows([]string{"suggestion_id", "start_date", "end_date", "status", "suggested_at", "accepted_at"}).
		AddRow(id, now, now.AddDate(0, 0, 6), status, now, nil)
}

func suggestionItemRows(suggestionID int64, count int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"item_id", "suggestion_id", "date", "meal_type", "food_item_id", "planned_quantity", "position"})
	for i := 0; i < count; i++ {
		rows.AddRow(int64(i+1), suggestionID, time.Now().AddDate(0, 0, i), models.MealLunch, int64(100+i), 5.0, i)
	}
	return rows
}

func TestAcceptSuggestion_Success(t *testing.T) {
	repo, mock, db := newTestSuggestionRepo(t)
	defer db.Close()

	ctx := context.Background()
	const suggestionID = int64(11)
	const actingUserID = int64(1)
	const itemCount = 3

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs(suggestionID).
		WillReturnRows(suggestionRow(suggestionID, models.SuggestionPending))
	mock.ExpectQuery("SELECT (.+) FROM menu_suggestion_items").
		WithArgs(suggestionID).
		WillReturnRows(suggestionItemRows(suggestionID, itemCount))

	prep := mock.ExpectPrepare("INSERT INTO menu_plan")
	for i := 0; i < itemCount; i++ {
		prep.ExpectQuery().
			WithArgs(sqlmock.AnyArg(), models.MealLunch, int64(100+i), 5.0, actingUserID).
			WillReturnRows(sqlmock.NewRows([]string{"entry_id", "created_at"}).AddRow(int64(i+1), time.Now()))
	}

	mock.ExpectQuery("UPDATE menu_suggestions").
		WithArgs(suggestionID).
		WillReturnRows(sqlmock.NewRows([]string{"accepted_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	accepted, err := repo.AcceptSuggestion(ctx, suggestionID, actingUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted.Status != models.SuggestionAccepted {
		t.Errorf("expected status ACCEPTED, got %s", accepted.Status)
	}
	if accepted.AcceptedAt == nil {
		t.Error("expected AcceptedAt to be set")
	}
	if len(accepted.Items) != itemCount {
		t.Errorf("expected %d items, got %d", itemCount, len(accepted.Items))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAcceptSuggestion_NotPending(t *testing.T) {
	repo, mock, db := newTestSuggestionRepo(t)
	defer db.Close()

	ctx := context.Background()
	const suggestionID = int64(12)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs(suggestionID).
		WillReturnRows(suggestionRow(suggestionID, models.SuggestionRejected))
	mock.ExpectRollback()

	_, err := repo.AcceptSuggestion(ctx, suggestionID, 1)
	if !errors.Is(err, ErrSuggestionNotPending) {
		t.Fatalf("expected ErrSuggestionNotPending, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAcceptSuggestion_NotFound(t *testing.T) {
	repo, mock, db := newTestSuggestionRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"suggestion_id", "start_date", "end_date", "status", "suggested_at", "accepted_at"}))
	mock.ExpectRollback()

	_, err := repo.AcceptSuggestion(ctx, 404, 1)
	if !errors.Is(err, ErrSuggestionNotFound) {
		t.Fatalf("expected ErrSuggestionNotFound, got %v", err)
	}
}

func TestAcceptSuggestion_InsertFailureRollsBack(t *testing.T) {
	repo, mock, db := newTestSuggestionRepo(t)
	defer db.Close()

	ctx := context.Background()
	const suggestionID = int64(13)
	const itemCount = 3

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs(suggestionID).
		WillReturnRows(suggestionRow(suggestionID, models.SuggestionPending))
	mock.ExpectQuery("SELECT (.+) FROM menu_suggestion_items").
		WithArgs(suggestionID).
		WillReturnRows(suggestionItemRows(suggestionID, itemCount))

	prep := mock.ExpectPrepare("INSERT INTO menu_plan")
	prep.ExpectQuery().
		WithArgs(sqlmock.AnyArg(), models.MealLunch, int64(100), 5.0, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "created_at"}).AddRow(int64(1), time.Now()))
	prep.ExpectQuery().
		WithArgs(sqlmock.AnyArg(), models.MealLunch, int64(101), 5.0, int64(1)).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err := repo.AcceptSuggestion(ctx, suggestionID, 1)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}

	// no commit expectation was registered: a failed insert must never commit
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRejectSuggestion_Success(t *testing.T) {
	repo, mock, db := newTestSuggestionRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE menu_suggestions").
		WithArgs(int64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RejectSuggestion(ctx, 21); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRejectSuggestion_AlreadyDecided(t *testing.T) {
	repo, mock, db := newTestSuggestionRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE menu_suggestions").
		WithArgs(int64(22)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM menu_suggestions").
		WithArgs(int64(22)).
		WillReturnRows(suggestionRow(22, models.SuggestionAccepted))

	err := repo.RejectSuggestion(ctx, 22)
	if !errors.Is(err, ErrSuggestionNotPending) {
		t.Fatalf("expected ErrSuggestionNotPending, got %v", err)
	}
}

func TestRejectSuggestion_NotFound(t *testing.T) {
	repo, mock, db := newTestSuggestionRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE menu_suggestions").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM menu_suggestions").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"suggestion_id", "start_date", "end_date", "status", "suggested_at", "accepted_at"}))

	err := repo.RejectSuggestion(ctx, 404)
	if !errors.Is(err, ErrSuggestionNotFound) {
		t.Fatalf("expected ErrSuggestionNotFound, got %v", err)
	}
}

func TestCreateSuggestion_Success(t *testing.T) {
	repo, mock, db := newTestSuggestionRepo(t)
	defer db.Close()

	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	suggestion := models.MenuSuggestion{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 6),
		Items: []models.SuggestionItem{
			{Date: start, MealType: models.MealBreakfast, FoodItemID: 1, PlannedQuantity: 2},
			{Date: start, MealType: models.MealLunch, FoodItemID: 2, PlannedQuantity: 3},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO menu_suggestions").
		WithArgs(suggestion.StartDate, suggestion.EndDate, models.SuggestionPending).
		WillReturnRows(sqlmock.NewRows([]string{"suggestion_id", "suggested_at"}).AddRow(int64(5), time.Now()))

	prep := mock.ExpectPrepare("INSERT INTO menu_suggestion_items")
	prep.ExpectQuery().
		WithArgs(int64(5), suggestion.Items[0].Date, models.MealBreakfast, int64(1), 2.0, 0).
		WillReturnRows(sqlmock.NewRows([]string{"item_id"}).AddRow(int64(51)))
	prep.ExpectQuery().
		WithArgs(int64(5), suggestion.Items[1].Date, models.MealLunch, int64(2), 3.0, 1).
		WillReturnRows(sqlmock.NewRows([]string{"item_id"}).AddRow(int64(52)))

	mock.ExpectCommit()

	created, err := repo.CreateSuggestion(ctx, suggestion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.SuggestionID != 5 {
		t.Errorf("expected SuggestionID=5, got %d", created.SuggestionID)
	}
	if created.Status != models.SuggestionPending {
		t.Errorf("expected status PENDING, got %s", created.Status)
	}
	if created.Items[1].Position != 1 {
		t.Errorf("expected second item position 1, got %d", created.Items[1].Position)
	}
}

// ─────────────────────────────── retry on transient failures ───────────────────────────────

func TestAcceptSuggestion_RetriesTransientFailure(t *testing.T) {
	repo, mock, db := newTestSuggestionRepo(t)
	defer db.Close()

	ctx := context.Background()
	const suggestionID = int64(21)
	const actingUserID = int64(1)

	// first attempt dies on a serialization failure and rolls back
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs(suggestionID).
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectRollback()

	// second attempt runs the whole transaction to commit
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs(suggestionID).
		WillReturnRows(suggestionRow(suggestionID, models.SuggestionPending))
	mock.ExpectQuery("SELECT (.+) FROM menu_suggestion_items").
		WithArgs(suggestionID).
		WillReturnRows(suggestionItemRows(suggestionID, 1))

	prep := mock.ExpectPrepare("INSERT INTO menu_plan")
	prep.ExpectQuery().
		WithArgs(sqlmock.AnyArg(), models.MealLunch, int64(100), 5.0, actingUserID).
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "created_at"}).AddRow(int64(1), time.Now()))

	mock.ExpectQuery("UPDATE menu_suggestions").
		WithArgs(suggestionID).
		WillReturnRows(sqlmock.NewRows([]string{"accepted_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	accepted, err := repo.AcceptSuggestion(ctx, suggestionID, actingUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted.Status != models.SuggestionAccepted {
		t.Errorf("expected status ACCEPTED, got %s", accepted.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAcceptSuggestion_DoesNotRetryNonTransientFailure(t *testing.T) {
	repo, mock, db := newTestSuggestionRepo(t)
	defer db.Close()

	ctx := context.Background()
	const suggestionID = int64(22)

	// a constraint violation must surface immediately, one attempt only
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs(suggestionID).
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.AcceptSuggestion(ctx, suggestionID, int64(1))
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected wrapped query error, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected a single attempt: %v", err)
	}
}
