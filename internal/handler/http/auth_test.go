// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-mess-manager/internal/app"
	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/internal/store"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validRegistration = models.RegisterRequest{
	Email:    "alice@campus.edu",
	Password: "long-enough-password",
	Name:     "Alice",
	Role:     models.RoleStudent,
}

// TestRegister_Success verifies that a valid registration answers 201 with
// the issued token and the created user snapshot.
func TestRegister_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, request models.RegisterRequest) (models.User, error) {
			return models.User{UserID: 1, Email: request.Email, Name: request.Name, Role: request.Role}, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return models.Token{SignedString: signedToken}, nil
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, validRegistration)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var response models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, signedToken, response.Token)
	assert.Equal(t, int64(1), response.User.UserID)
	assert.Equal(t, models.RoleStudent, response.User.Role)
}

// TestRegister_InvalidJSON verifies that a malformed body answers 400 without
// reaching the service layer.
func TestRegister_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.CodeValidationError, decodeAPIError(t, rec).ErrorCode)
}

// TestRegister_ShortPassword verifies the minimum password length rule.
func TestRegister_ShortPassword(t *testing.T) {
	request := validRegistration
	request.Password = "short"

	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, request)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.CodeValidationError, decodeAPIError(t, rec).ErrorCode)
}

// TestRegister_EmailTaken verifies the duplicate-email conflict mapping.
func TestRegister_EmailTaken(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, validRegistration)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, models.CodeConflictError, apiErr.ErrorCode)
	assert.Equal(t, app.MsgEmailAlreadyExists, apiErr.Message)
}

// TestLogin_Success verifies the happy-path login response shape.
func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		loginFn: func(_ context.Context, request models.LoginRequest) (models.User, error) {
			return models.User{UserID: 7, Email: request.Email, Role: models.RoleAdmin}, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return models.Token{SignedString: signedToken}, nil
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	body := jsonBody(t, models.LoginRequest{Email: "admin@campus.edu", Password: "correct-password"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, signedToken, response.Token)
	assert.Equal(t, models.RoleAdmin, response.User.Role)
}

// TestLogin_WrongCredentials verifies that a wrong password and an unknown
// email produce byte-identical 401 responses, so the endpoint cannot be used
// to probe which addresses are registered.
func TestLogin_WrongCredentials(t *testing.T) {
	cases := []struct {
		name     string
		loginErr error
	}{
		{name: "WrongPassword", loginErr: service.ErrWrongPassword},
		{name: "UnknownEmail", loginErr: store.ErrNoUserWasFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuthService{
				loginFn: func(_ context.Context, _ models.LoginRequest) (models.User, error) {
					return models.User{}, tc.loginErr
				},
			}

			h := newTestHandler(t, &service.Services{AuthService: auth})
			body := jsonBody(t, models.LoginRequest{Email: "someone@campus.edu", Password: "whatever-password"})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			rec := httptest.NewRecorder()

			h.login(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			apiErr := decodeAPIError(t, rec)
			assert.Equal(t, models.CodeUnauthenticated, apiErr.ErrorCode)
			assert.Equal(t, app.MsgInvalidEmailPassword, apiErr.Message)
		})
	}
}

// TestProfile_NoPrincipal verifies that profile answers 401 when the request
// context carries no principal.
func TestProfile_NoPrincipal(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	rec := httptest.NewRecorder()

	h.profile(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, models.CodeUnauthenticated, decodeAPIError(t, rec).ErrorCode)
}

// authedRequest builds a request with a student principal planted in the
// context, the way the auth middleware would after verifying a token.
func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	student := models.User{UserID: 5, Email: "alice@campus.edu", Name: "Alice", Role: models.RoleStudent}
	return req.WithContext(context.WithValue(req.Context(), utils.PrincipalCtxKey, student))
}

// TestUpdateProfile_Success verifies the principal's own account is updated
// and the fresh record is echoed back.
func TestUpdateProfile_Success(t *testing.T) {
	var gotUserID int64

	auth := &mockAuthService{
		updateProfileFn: func(_ context.Context, userID int64, request models.UpdateProfileRequest) (models.User, error) {
			gotUserID = userID
			return models.User{UserID: userID, Name: request.Name, Email: "alice@campus.edu", Role: models.RoleStudent}, nil
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	body := jsonBody(t, models.UpdateProfileRequest{Name: "Alice Cooper"})
	rec := httptest.NewRecorder()

	h.updateProfile(rec, authedRequest(http.MethodPut, "/api/auth/profile", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), gotUserID)

	var updated models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Alice Cooper", updated.Name)
}

// TestUpdateProfile_NoFields verifies that a payload changing nothing is
// rejected before reaching the service layer.
func TestUpdateProfile_NoFields(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})
	rec := httptest.NewRecorder()

	h.updateProfile(rec, authedRequest(http.MethodPut, "/api/auth/profile", "{}"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.CodeValidationError, decodeAPIError(t, rec).ErrorCode)
}

// TestUpdateProfile_EmailTaken verifies the duplicate-email conflict mapping
// when the principal moves to an address another account already owns.
func TestUpdateProfile_EmailTaken(t *testing.T) {
	auth := &mockAuthService{
		updateProfileFn: func(_ context.Context, _ int64, _ models.UpdateProfileRequest) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	body := jsonBody(t, models.UpdateProfileRequest{Email: "taken@campus.edu"})
	rec := httptest.NewRecorder()

	h.updateProfile(rec, authedRequest(http.MethodPut, "/api/auth/profile", body))

	require.Equal(t, http.StatusConflict, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, models.CodeConflictError, apiErr.ErrorCode)
	assert.Equal(t, app.MsgEmailAlreadyExists, apiErr.Message)
}

// TestChangePassword_Success verifies a correct current password yields an
// empty 204.
func TestChangePassword_Success(t *testing.T) {
	var gotUserID int64

	auth := &mockAuthService{
		changePasswordFn: func(_ context.Context, userID int64, _ models.ChangePasswordRequest) error {
			gotUserID = userID
			return nil
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	body := jsonBody(t, models.ChangePasswordRequest{CurrentPassword: "old-password-123", NewPassword: "new-password-456"})
	rec := httptest.NewRecorder()

	h.changePassword(rec, authedRequest(http.MethodPost, "/api/auth/change-password", body))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(5), gotUserID)
}

// TestChangePassword_WrongCurrent verifies a failed re-verification of the
// current password answers 400, not 401: the caller is still authenticated.
func TestChangePassword_WrongCurrent(t *testing.T) {
	auth := &mockAuthService{
		changePasswordFn: func(_ context.Context, _ int64, _ models.ChangePasswordRequest) error {
			return service.ErrWrongPassword
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	body := jsonBody(t, models.ChangePasswordRequest{CurrentPassword: "guessed-wrong-pw", NewPassword: "new-password-456"})
	rec := httptest.NewRecorder()

	h.changePassword(rec, authedRequest(http.MethodPost, "/api/auth/change-password", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, models.CodeValidationError, apiErr.ErrorCode)
	assert.Equal(t, app.MsgCurrentPasswordIncorrect, apiErr.Message)
}

// TestChangePassword_ShortNewPassword verifies the minimum length rule stops
// the request before the service layer.
func TestChangePassword_ShortNewPassword(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})
	body := jsonBody(t, models.ChangePasswordRequest{CurrentPassword: "old-password-123", NewPassword: "short"})
	rec := httptest.NewRecorder()

	h.changePassword(rec, authedRequest(http.MethodPost, "/api/auth/change-password", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.CodeValidationError, decodeAPIError(t, rec).ErrorCode)
}

// TestLogout verifies logout is a no-op 204.
func TestLogout(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}
