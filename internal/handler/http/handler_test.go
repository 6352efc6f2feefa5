// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock services
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn   func(ctx context.Context, request models.RegisterRequest) (models.User, error)
	loginFn          func(ctx context.Context, request models.LoginRequest) (models.User, error)
	createTokenFn    func(ctx context.Context, user models.User) (models.Token, error)
	verifyTokenFn    func(ctx context.Context, tokenString string) (models.User, error)
	updateProfileFn  func(ctx context.Context, userID int64, request models.UpdateProfileRequest) (models.User, error)
	changePasswordFn func(ctx context.Context, userID int64, request models.ChangePasswordRequest) error
}

func (m *mockAuthService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	return m.registerUserFn(ctx, request)
}

func (m *mockAuthService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	return m.loginFn(ctx, request)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) VerifyToken(ctx context.Context, tokenString string) (models.User, error) {
	return m.verifyTokenFn(ctx, tokenString)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, request models.UpdateProfileRequest) (models.User, error) {
	return m.updateProfileFn(ctx, userID, request)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error {
	return m.changePasswordFn(ctx, userID, request)
}

// mockUserService implements service.UserService.
type mockUserService struct {
	getUsersFn          func(ctx context.Context, role models.Role) ([]models.User, error)
	getUserFn           func(ctx context.Context, userID int64) (models.User, error)
	updateUserFn        func(ctx context.Context, user models.User) (models.User, error)
	deleteUserFn        func(ctx context.Context, userID int64) error
	getAdminDashboardFn func(ctx context.Context) (models.AdminDashboard, error)
}

func (m *mockUserService) GetUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	return m.getUsersFn(ctx, role)
}

func (m *mockUserService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockUserService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.updateUserFn(ctx, user)
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID int64) error {
	return m.deleteUserFn(ctx, userID)
}

func (m *mockUserService) GetAdminDashboard(ctx context.Context) (models.AdminDashboard, error) {
	return m.getAdminDashboardFn(ctx)
}

// mockSuggestionService implements service.SuggestionService.
type mockSuggestionService struct {
	createSuggestionFn func(ctx context.Context, suggestion models.MenuSuggestion) (models.MenuSuggestion, error)
	getSuggestionFn    func(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error)
	getSuggestionsFn   func(ctx context.Context, status models.SuggestionStatus) ([]models.MenuSuggestion, error)
	acceptSuggestionFn func(ctx context.Context, suggestionID, actingUserID int64) (models.MenuSuggestion, error)
	rejectSuggestionFn func(ctx context.Context, suggestionID int64) error
}

func (m *mockSuggestionService) CreateSuggestion(ctx context.Context, suggestion models.MenuSuggestion) (models.MenuSuggestion, error) {
	return m.createSuggestionFn(ctx, suggestion)
}

func (m *mockSuggestionService) GetSuggestion(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error) {
	return m.getSuggestionFn(ctx, suggestionID)
}

func (m *mockSuggestionService) GetSuggestions(ctx context.Context, status models.SuggestionStatus) ([]models.MenuSuggestion, error) {
	return m.getSuggestionsFn(ctx, status)
}

func (m *mockSuggestionService) AcceptSuggestion(ctx context.Context, suggestionID, actingUserID int64) (models.MenuSuggestion, error) {
	return m.acceptSuggestionFn(ctx, suggestionID, actingUserID)
}

func (m *mockSuggestionService) RejectSuggestion(ctx context.Context, suggestionID int64) error {
	return m.rejectSuggestionFn(ctx, suggestionID)
}

// mockMenuService implements service.MenuService.
type mockMenuService struct {
	getMenuFn         func(ctx context.Context, from, to time.Time) ([]models.Menu, error)
	getTodayMenuFn    func(ctx context.Context) (models.Menu, error)
	createMenuEntryFn func(ctx context.Context, entry models.MenuPlanEntry) (models.MenuPlanEntry, error)
	deleteMenuEntryFn func(ctx context.Context, entryID int64) error
	createFoodItemFn  func(ctx context.Context, item models.FoodItem) (models.FoodItem, error)
	getFoodItemsFn    func(ctx context.Context) ([]models.FoodItem, error)
}

func (m *mockMenuService) GetMenu(ctx context.Context, from, to time.Time) ([]models.Menu, error) {
	return m.getMenuFn(ctx, from, to)
}

func (m *mockMenuService) GetTodayMenu(ctx context.Context) (models.Menu, error) {
	return m.getTodayMenuFn(ctx)
}

func (m *mockMenuService) CreateMenuEntry(ctx context.Context, entry models.MenuPlanEntry) (models.MenuPlanEntry, error) {
	return m.createMenuEntryFn(ctx, entry)
}

func (m *mockMenuService) DeleteMenuEntry(ctx context.Context, entryID int64) error {
	return m.deleteMenuEntryFn(ctx, entryID)
}

func (m *mockMenuService) CreateFoodItem(ctx context.Context, item models.FoodItem) (models.FoodItem, error) {
	return m.createFoodItemFn(ctx, item)
}

func (m *mockMenuService) GetFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	return m.getFoodItemsFn(ctx)
}

// mockRecordsService implements service.RecordsService.
type mockRecordsService struct {
	recordConsumptionFn func(ctx context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error)
	getConsumptionFn    func(ctx context.Context, from, to time.Time) ([]models.ConsumptionRecord, error)
	recordWasteFn       func(ctx context.Context, record models.WasteRecord) (models.WasteRecord, error)
	getWasteReportFn    func(ctx context.Context, from, to time.Time) ([]models.WasteReportRow, error)
	submitFeedbackFn    func(ctx context.Context, feedback models.Feedback) (models.Feedback, error)
	getFeedbackFn       func(ctx context.Context, from, to time.Time) ([]models.Feedback, error)
	createHolidayFn     func(ctx context.Context, holiday models.HolidaySchedule) (models.HolidaySchedule, error)
	getHolidaysFn       func(ctx context.Context) ([]models.HolidaySchedule, error)
	deleteHolidayFn     func(ctx context.Context, scheduleID int64) error
}

func (m *mockRecordsService) RecordConsumption(ctx context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error) {
	return m.recordConsumptionFn(ctx, record)
}

func (m *mockRecordsService) GetConsumption(ctx context.Context, from, to time.Time) ([]models.ConsumptionRecord, error) {
	return m.getConsumptionFn(ctx, from, to)
}

func (m *mockRecordsService) RecordWaste(ctx context.Context, record models.WasteRecord) (models.WasteRecord, error) {
	return m.recordWasteFn(ctx, record)
}

func (m *mockRecordsService) GetWasteReport(ctx context.Context, from, to time.Time) ([]models.WasteReportRow, error) {
	return m.getWasteReportFn(ctx, from, to)
}

func (m *mockRecordsService) SubmitFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error) {
	return m.submitFeedbackFn(ctx, feedback)
}

func (m *mockRecordsService) GetFeedback(ctx context.Context, from, to time.Time) ([]models.Feedback, error) {
	return m.getFeedbackFn(ctx, from, to)
}

func (m *mockRecordsService) CreateHoliday(ctx context.Context, holiday models.HolidaySchedule) (models.HolidaySchedule, error) {
	return m.createHolidayFn(ctx, holiday)
}

func (m *mockRecordsService) GetHolidays(ctx context.Context) ([]models.HolidaySchedule, error) {
	return m.getHolidaysFn(ctx)
}

func (m *mockRecordsService) DeleteHoliday(ctx context.Context, scheduleID int64) error {
	return m.deleteHolidayFn(ctx, scheduleID)
}

// mockAppInfoService implements service.AppInfoService.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler around the given service mocks. Nil fields
// stay nil; a test that reaches a nil service is a test bug.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}
	return NewHandler(svcs, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// decodeAPIError unmarshals the recorded response body as an APIError.
func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) models.APIError {
	t.Helper()
	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}
