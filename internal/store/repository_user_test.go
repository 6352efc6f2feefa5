package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &userRepository{
		db:     forTesting(db, l),
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(user models.User, now time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"user_id", "email", "password_hash", "name", "role", "created_at", "updated_at"}).
		AddRow(user.UserID, user.Email, user.PasswordHash, user.Name, user.Role, now, now)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		UserID:       1,
		Email:        "john@example.com",
		PasswordHash: "hash",
		Name:         "John",
		Role:         models.RoleStudent,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.PasswordHash, user.Name, user.Role).
		WillReturnRows(userRows(user, time.Now()))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Email: "john@example.com"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Email: "john@example.com"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, user)
	if err == nil || !strings.Contains(err.Error(), "db network error") {
		t.Fatalf("expected wrapped DB error, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		UserID:       7,
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Name:         "Admin",
		Role:         models.RoleAdmin,
	}

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(user.Email).
		WillReturnRows(userRows(user, time.Now()))

	found, err := repo.FindUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Role != models.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", found.Role)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "password_hash", "name", "role", "created_at", "updated_at"}))

	_, err := repo.FindUserByEmail(ctx, "ghost@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "password_hash", "name", "role", "created_at", "updated_at"}))

	_, err := repo.GetUserByID(ctx, 404)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestGetAllUsers_RoleFilter(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"user_id", "email", "password_hash", "name", "role", "created_at", "updated_at"}).
		AddRow(1, "a@example.com", "h", "A", models.RoleStudent, now, now).
		AddRow(2, "b@example.com", "h", "B", models.RoleStudent, now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(string(models.RoleStudent)).
		WillReturnRows(rows)

	users, err := repo.GetAllUsers(ctx, models.RoleStudent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestDeleteUser_WithDependencies(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	err := repo.DeleteUser(ctx, 3)
	if !errors.Is(err, ErrUserHasDependencies) {
		t.Fatalf("expected ErrUserHasDependencies, got %v", err)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteUser(ctx, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUser(ctx, 9)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{
		UserID: 5,
		Email:  "alice@campus.edu",
		Name:   "Alice Cooper",
		Role:   models.RoleStudent,
	}

	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(5), "Alice Cooper", "alice@campus.edu").
		WillReturnRows(userRows(user, time.Now()))

	updated, err := repo.UpdateProfile(context.Background(), 5, "Alice Cooper", "alice@campus.edu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Alice Cooper" {
		t.Errorf("expected name %q, got %q", "Alice Cooper", updated.Name)
	}
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(5), "Alice", "taken@campus.edu").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.UpdateProfile(context.Background(), 5, "Alice", "taken@campus.edu")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUpdateProfile_UserNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	empty := sqlmock.NewRows([]string{"user_id", "email", "password_hash", "name", "role", "created_at", "updated_at"})
	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(404), "Ghost", "ghost@campus.edu").
		WillReturnRows(empty)

	_, err := repo.UpdateProfile(context.Background(), 404, "Ghost", "ghost@campus.edu")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateUserPassword_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(5), "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateUserPassword(context.Background(), 5, "new-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateUserPassword_UserNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(404), "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateUserPassword(context.Background(), 404, "new-hash")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestGetAdminDashboard_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"admin_count", "staff_count", "student_count", "total_consumption"}).
		AddRow(2, 11, 340, 1287)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	dashboard, err := repo.GetAdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.StudentCount != 340 {
		t.Errorf("expected 340 students, got %d", dashboard.StudentCount)
	}
	if dashboard.TotalConsumption != 1287 {
		t.Errorf("expected 1287 consumption records, got %d", dashboard.TotalConsumption)
	}
}
