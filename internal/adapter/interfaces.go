// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the mess-manager server.
//
// The primary abstraction is [ServerAdapter], which decouples the client-side
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrForbidden] for 403).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mess-manager/models"
)

// ServerAdapter defines transport-agnostic communication with the mess-manager
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Called by the session controller whenever the
	// persisted credential changes; an empty string clears the token.
	SetToken(token string)

	// Token returns the bearer token currently held by the adapter, or an
	// empty string if none has been set.
	Token() string

	// Register creates a new account and returns the issued token together
	// with the authoritative user snapshot.
	Register(ctx context.Context, request models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates with email and password and returns the issued
	// token together with the authoritative user snapshot.
	Login(ctx context.Context, request models.LoginRequest) (models.AuthResponse, error)

	// Profile returns the server-side record of the authenticated principal.
	// The session controller uses it to revalidate a stale credential:
	// [ErrUnauthorized] means the token is no longer honoured.
	Profile(ctx context.Context) (models.User, error)

	// GetMenu returns the committed menu plan between from and to inclusive,
	// one entry per day, grouped by meal slot.
	GetMenu(ctx context.Context, from, to time.Time) ([]models.Menu, error)

	// GetTodayMenu returns the committed plan for the current date.
	GetTodayMenu(ctx context.Context) (models.Menu, error)

	// GetSuggestions lists menu suggestions, optionally narrowed by status
	// (empty status means all). Admin only.
	GetSuggestions(ctx context.Context, status models.SuggestionStatus) ([]models.MenuSuggestion, error)

	// AcceptSuggestion accepts a pending suggestion and returns the date
	// range that was materialized into the menu plan. Admin only.
	// Returns [ErrConflict] (wrapped) when the suggestion is already decided
	// and [ErrUnprocessable] (wrapped) when its end date has passed.
	AcceptSuggestion(ctx context.Context, suggestionID int64, actingUserID int64) (models.AcceptedRange, error)

	// RejectSuggestion rejects a pending suggestion. Admin only.
	RejectSuggestion(ctx context.Context, suggestionID int64) error

	// SubmitFeedback records a meal rating for the authenticated student.
	SubmitFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error)

	// RecordConsumption logs a served quantity. Mess staff only.
	RecordConsumption(ctx context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error)

	// RecordWaste logs a leftover quantity. Mess staff only.
	RecordWaste(ctx context.Context, record models.WasteRecord) (models.WasteRecord, error)
}
