// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-mess-manager/internal/app"
	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokensByRole maps a bearer token to the principal the auth service resolves
// it to. Used by the router-level authorization tests.
var tokensByRole = map[string]models.User{
	"student-token": {UserID: 1, Email: "student@campus.edu", Role: models.RoleStudent},
	"staff-token":   {UserID: 2, Email: "staff@campus.edu", Role: models.RoleMessStaff},
	"admin-token":   {UserID: 3, Email: "admin@campus.edu", Role: models.RoleAdmin},
}

// newRouterForAuthz builds a fully routed handler whose business services
// always succeed, so every response status is decided by the middleware chain.
func newRouterForAuthz(t *testing.T) http.Handler {
	t.Helper()

	auth := &mockAuthService{
		verifyTokenFn: func(_ context.Context, tokenString string) (models.User, error) {
			principal, ok := tokensByRole[tokenString]
			if !ok {
				return models.User{}, service.ErrTokenIsExpiredOrInvalid
			}
			return principal, nil
		},
	}

	svcs := &service.Services{
		AuthService: auth,
		UserService: &mockUserService{
			getUsersFn: func(_ context.Context, _ models.Role) ([]models.User, error) {
				return nil, nil
			},
			getAdminDashboardFn: func(_ context.Context) (models.AdminDashboard, error) {
				return models.AdminDashboard{}, nil
			},
		},
		MenuService: &mockMenuService{
			getTodayMenuFn: func(_ context.Context) (models.Menu, error) {
				return models.Menu{Date: "2026-03-10"}, nil
			},
		},
		RecordsService: &mockRecordsService{
			submitFeedbackFn: func(_ context.Context, feedback models.Feedback) (models.Feedback, error) {
				return feedback, nil
			},
			recordConsumptionFn: func(_ context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error) {
				return record, nil
			},
		},
		SuggestionService: &mockSuggestionService{
			getSuggestionsFn: func(_ context.Context, _ models.SuggestionStatus) ([]models.MenuSuggestion, error) {
				return nil, nil
			},
		},
	}

	return newTestHandler(t, svcs).Init()
}

func doAuthz(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// TestRouter_AuthorizationMatrix drives representative routes with every
// role and asserts the gate decisions. An unauthenticated caller always gets
// 401, even on routes it would also lack the role for; a role miss gets 403.
func TestRouter_AuthorizationMatrix(t *testing.T) {
	router := newRouterForAuthz(t)

	feedbackBody := jsonBody(t, models.FeedbackRequest{
		MealDate: "2026-03-10", MealType: models.MealLunch, Rating: 4,
	})
	consumptionBody := jsonBody(t, models.ConsumptionRequest{
		FoodItemID: 1, Quantity: 12.5, Date: "2026-03-10", MealType: models.MealLunch,
	})

	cases := []struct {
		method string
		target string
		body   string
		token  string
		want   int
	}{
		// public menu: readable by everyone, token or not
		{http.MethodGet, "/api/menu", "", "", http.StatusOK},
		{http.MethodGet, "/api/menu", "", "student-token", http.StatusOK},

		// feedback submission: students only
		{http.MethodPost, "/api/feedback", feedbackBody, "", http.StatusUnauthorized},
		{http.MethodPost, "/api/feedback", feedbackBody, "student-token", http.StatusCreated},
		{http.MethodPost, "/api/feedback", feedbackBody, "staff-token", http.StatusForbidden},
		{http.MethodPost, "/api/feedback", feedbackBody, "admin-token", http.StatusForbidden},

		// consumption recording: staff and admin
		{http.MethodPost, "/api/consumption", consumptionBody, "", http.StatusUnauthorized},
		{http.MethodPost, "/api/consumption", consumptionBody, "student-token", http.StatusForbidden},
		{http.MethodPost, "/api/consumption", consumptionBody, "staff-token", http.StatusCreated},
		{http.MethodPost, "/api/consumption", consumptionBody, "admin-token", http.StatusCreated},

		// user administration: admin only, 401 wins over 403 without a token
		{http.MethodGet, "/api/users", "", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/users", "", "student-token", http.StatusForbidden},
		{http.MethodGet, "/api/users", "", "staff-token", http.StatusForbidden},
		{http.MethodGet, "/api/users", "", "admin-token", http.StatusOK},

		// admin dashboard: admin only
		{http.MethodGet, "/api/admin-dashboard", "", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin-dashboard", "", "student-token", http.StatusForbidden},
		{http.MethodGet, "/api/admin-dashboard", "", "staff-token", http.StatusForbidden},
		{http.MethodGet, "/api/admin-dashboard", "", "admin-token", http.StatusOK},

		// suggestion listing: admin only
		{http.MethodGet, "/api/menu-suggestions", "", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/menu-suggestions", "", "staff-token", http.StatusForbidden},
		{http.MethodGet, "/api/menu-suggestions", "", "admin-token", http.StatusOK},
	}

	for _, tc := range cases {
		name := fmt.Sprintf("%s %s as %q", tc.method, tc.target, tc.token)
		t.Run(name, func(t *testing.T) {
			rec := doAuthz(t, router, tc.method, tc.target, tc.token, tc.body)
			require.Equal(t, tc.want, rec.Code)

			switch tc.want {
			case http.StatusUnauthorized:
				assert.Equal(t, models.CodeUnauthenticated, decodeAPIError(t, rec).ErrorCode)
			case http.StatusForbidden:
				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, models.CodeForbidden, apiErr.ErrorCode)
				assert.Equal(t, app.MsgAccessDenied, apiErr.Message)
			}
		})
	}
}

// TestRouter_InvalidTokenIs401NotForbidden verifies that a garbage token on a
// role-gated route is an authentication failure, never an authorization one.
func TestRouter_InvalidTokenIs401NotForbidden(t *testing.T) {
	router := newRouterForAuthz(t)

	rec := doAuthz(t, router, http.MethodGet, "/api/users", "garbage-token", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, models.CodeUnauthenticated, decodeAPIError(t, rec).ErrorCode)
}

// TestRouter_UnsupportedMethodAnswers404 verifies the MethodNotAllowed
// override hides route existence from callers using the wrong verb.
func TestRouter_UnsupportedMethodAnswers404(t *testing.T) {
	router := newRouterForAuthz(t)

	rec := doAuthz(t, router, http.MethodDelete, "/api/version", "", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// TestRouter_Version verifies the version endpoint is public plain text.
func TestRouter_Version(t *testing.T) {
	router := newRouterForAuthz(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
