package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/config"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/go-resty/resty/v2"
)

const dateParamLayout = "2006-01-02"

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the registration payload to
// POST /api/auth/register and stores the issued token via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterRequest) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&auth).
		Post("/api/auth/register")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetToken(auth.Token)
	return auth, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login and stores the issued token via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginRequest) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&auth).
		Post("/api/auth/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetToken(auth.Token)
	return auth, nil
}

// Profile implements [ServerAdapter]. It GETs /api/auth/profile and returns
// the authoritative principal record. Requires a valid bearer token.
func (h *httpServerAdapter) Profile(ctx context.Context) (models.User, error) {
	resp, err := h.authedRequest(ctx).Get("/api/auth/profile")
	if err != nil {
		return models.User{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode profile response: %w", err)
	}
	return user, nil
}

// GetMenu implements [ServerAdapter]. It GETs /api/menu with from/to query
// parameters and decodes the per-day menu slice.
func (h *httpServerAdapter) GetMenu(ctx context.Context, from, to time.Time) ([]models.Menu, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("from", from.Format(dateParamLayout)).
		SetQueryParam("to", to.Format(dateParamLayout)).
		Get("/api/menu")
	if err != nil {
		return nil, fmt.Errorf("get menu request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var menus []models.Menu
	if err = json.Unmarshal(resp.Body(), &menus); err != nil {
		return nil, fmt.Errorf("decode menu response: %w", err)
	}
	return menus, nil
}

// GetTodayMenu implements [ServerAdapter]. It GETs /api/menu without range
// parameters, which the server answers with the current date's plan.
func (h *httpServerAdapter) GetTodayMenu(ctx context.Context) (models.Menu, error) {
	resp, err := h.authedRequest(ctx).Get("/api/menu")
	if err != nil {
		return models.Menu{}, fmt.Errorf("get today menu request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Menu{}, err
	}

	var menu models.Menu
	if err = json.Unmarshal(resp.Body(), &menu); err != nil {
		return models.Menu{}, fmt.Errorf("decode today menu response: %w", err)
	}
	return menu, nil
}

// GetSuggestions implements [ServerAdapter]. It GETs /api/menu-suggestions with an
// optional status query parameter.
func (h *httpServerAdapter) GetSuggestions(ctx context.Context, status models.SuggestionStatus) ([]models.MenuSuggestion, error) {
	req := h.authedRequest(ctx)
	if status != "" {
		req.SetQueryParam("status", string(status))
	}

	resp, err := req.Get("/api/menu-suggestions")
	if err != nil {
		return nil, fmt.Errorf("get suggestions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var suggestions []models.MenuSuggestion
	if err = json.Unmarshal(resp.Body(), &suggestions); err != nil {
		return nil, fmt.Errorf("decode suggestions response: %w", err)
	}
	return suggestions, nil
}

// AcceptSuggestion implements [ServerAdapter]. It POSTs the acting admin id to
// POST /api/menu-suggestions/{id}/accept and decodes the materialized date range.
func (h *httpServerAdapter) AcceptSuggestion(ctx context.Context, suggestionID int64, actingUserID int64) (models.AcceptedRange, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.AcceptSuggestionRequest{ActingUserID: actingUserID}).
		Post("/api/menu-suggestions/" + strconv.FormatInt(suggestionID, 10) + "/accept")
	if err != nil {
		return models.AcceptedRange{}, fmt.Errorf("accept suggestion request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AcceptedRange{}, err
	}

	var accepted models.AcceptedRange
	if err = json.Unmarshal(resp.Body(), &accepted); err != nil {
		return models.AcceptedRange{}, fmt.Errorf("decode accepted range response: %w", err)
	}
	return accepted, nil
}

// RejectSuggestion implements [ServerAdapter]. It POSTs to
// POST /api/menu-suggestions/{id}/reject.
func (h *httpServerAdapter) RejectSuggestion(ctx context.Context, suggestionID int64) error {
	resp, err := h.authedRequest(ctx).
		Post("/api/menu-suggestions/" + strconv.FormatInt(suggestionID, 10) + "/reject")
	if err != nil {
		return fmt.Errorf("reject suggestion request: %w", err)
	}

	return mapHTTPError(resp)
}

// SubmitFeedback implements [ServerAdapter]. It POSTs the rating payload to
// POST /api/feedback and returns the persisted record.
func (h *httpServerAdapter) SubmitFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error) {
	var saved models.Feedback

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(feedback).
		SetResult(&saved).
		Post("/api/feedback")
	if err != nil {
		return models.Feedback{}, fmt.Errorf("submit feedback request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Feedback{}, err
	}

	return saved, nil
}

// RecordConsumption implements [ServerAdapter]. It POSTs the record to
// POST /api/consumption.
func (h *httpServerAdapter) RecordConsumption(ctx context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error) {
	var saved models.ConsumptionRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		SetResult(&saved).
		Post("/api/consumption")
	if err != nil {
		return models.ConsumptionRecord{}, fmt.Errorf("record consumption request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ConsumptionRecord{}, err
	}

	return saved, nil
}

// RecordWaste implements [ServerAdapter]. It POSTs the record to
// POST /api/waste.
func (h *httpServerAdapter) RecordWaste(ctx context.Context, record models.WasteRecord) (models.WasteRecord, error) {
	var saved models.WasteRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		SetResult(&saved).
		Post("/api/waste")
	if err != nil {
		return models.WasteRecord{}, fmt.Errorf("record waste request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.WasteRecord{}, err
	}

	return saved, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
