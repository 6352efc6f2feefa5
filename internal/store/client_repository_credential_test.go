package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
)

func newTestCredentialRepo(t *testing.T) (*credentialRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &credentialRepository{
		DB:     forTesting(db, l),
		logger: l,
	}
	return repo, mock, db
}

func testCredential(now time.Time) models.Credential {
	return models.Credential{
		Token: "signed-token",
		User: models.User{
			UserID: 7,
			Email:  "admin@campus.edu",
			Name:   "Admin",
			Role:   models.RoleAdmin,
		},
		ExpiresAt:  now.Add(24 * time.Hour),
		VerifiedAt: now,
	}
}

func TestSaveCredential_UpsertsSlot(t *testing.T) {
	repo, mock, db := newTestCredentialRepo(t)
	defer db.Close()

	now := time.Now()
	credential := testCredential(now)
	userJSON, _ := json.Marshal(credential.User)

	mock.ExpectExec("INSERT INTO credentials").
		WithArgs(credential.Token, string(userJSON), credential.ExpiresAt, credential.VerifiedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.SaveCredential(context.Background(), credential); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetCredential_Success(t *testing.T) {
	repo, mock, db := newTestCredentialRepo(t)
	defer db.Close()

	now := time.Now()
	want := testCredential(now)
	userJSON, _ := json.Marshal(want.User)

	mock.ExpectQuery("SELECT token, user_json, expires_at, verified_at").
		WillReturnRows(sqlmock.
			NewRows([]string{"token", "user_json", "expires_at", "verified_at"}).
			AddRow(want.Token, string(userJSON), want.ExpiresAt, want.VerifiedAt))

	got, err := repo.GetCredential(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Token != want.Token {
		t.Errorf("expected token %q, got %q", want.Token, got.Token)
	}
	if got.User.UserID != want.User.UserID || got.User.Role != want.User.Role {
		t.Errorf("expected user snapshot %+v, got %+v", want.User, got.User)
	}
}

func TestGetCredential_EmptySlot(t *testing.T) {
	repo, mock, db := newTestCredentialRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT token, user_json, expires_at, verified_at").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetCredential(context.Background())
	if !errors.Is(err, ErrCredentialNotFound) {
		t.Errorf("expected ErrCredentialNotFound, got: %v", err)
	}
}

func TestGetCredential_CorruptSnapshot(t *testing.T) {
	repo, mock, db := newTestCredentialRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT token, user_json, expires_at, verified_at").
		WillReturnRows(sqlmock.
			NewRows([]string{"token", "user_json", "expires_at", "verified_at"}).
			AddRow("signed-token", "{not json", now.Add(time.Hour), now))

	_, err := repo.GetCredential(context.Background())
	if err == nil {
		t.Fatal("expected error for corrupt user snapshot, got nil")
	}
}

func TestTouchCredential_RefreshesSnapshot(t *testing.T) {
	repo, mock, db := newTestCredentialRepo(t)
	defer db.Close()

	now := time.Now()
	user := models.User{UserID: 7, Email: "admin@campus.edu", Role: models.RoleAdmin}
	userJSON, _ := json.Marshal(user)

	mock.ExpectExec("UPDATE credentials").
		WithArgs(string(userJSON), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.TouchCredential(context.Background(), user, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTouchCredential_EmptySlot(t *testing.T) {
	repo, mock, db := newTestCredentialRepo(t)
	defer db.Close()

	now := time.Now()
	user := models.User{UserID: 7}
	userJSON, _ := json.Marshal(user)

	mock.ExpectExec("UPDATE credentials").
		WithArgs(string(userJSON), now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.TouchCredential(context.Background(), user, now)
	if !errors.Is(err, ErrCredentialNotFound) {
		t.Errorf("expected ErrCredentialNotFound, got: %v", err)
	}
}

func TestDeleteCredential_EmptySlotIsNoop(t *testing.T) {
	repo, mock, db := newTestCredentialRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM credentials").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteCredential(context.Background()); err != nil {
		t.Errorf("expected nil for deleting an empty slot, got: %v", err)
	}
}
