package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mess-manager/models"
)

// ClientSessionService owns the client-side credential slot and its
// Absent → Valid → (Stale | Absent) lifecycle.
type ClientSessionService interface {
	// Register creates an account on the server and persists the issued
	// credential locally. Returns the stored credential.
	Register(ctx context.Context, request models.RegisterRequest) (models.Credential, error)

	// Login authenticates against the server and persists the issued
	// credential locally. Returns the stored credential.
	Login(ctx context.Context, request models.LoginRequest) (models.Credential, error)

	// Session resolves the current session state.
	//
	// An expired credential is cleared without any network call and reported
	// as [models.SessionAbsent]. A credential verified within the staleness
	// window is served from the local snapshot. A stale credential triggers
	// exactly one server revalidation even under concurrent callers; a 401
	// evicts the credential, any other failure keeps it and surfaces the
	// error alongside [models.SessionStale].
	Session(ctx context.Context) (models.Credential, models.SessionState, error)

	// Invalidate clears the credential slot after the server stopped
	// honouring the token mid-session (a 401 on a business call).
	Invalidate(ctx context.Context) error

	// Logout clears the credential slot on user request.
	Logout(ctx context.Context) error
}

// ClientMenuService reads the committed menu plan through the server adapter.
type ClientMenuService interface {
	TodayMenu(ctx context.Context) (models.Menu, error)
	Menu(ctx context.Context, from, to time.Time) ([]models.Menu, error)
}

// ClientSuggestionService drives the admin review workflow from the client.
type ClientSuggestionService interface {
	GetSuggestions(ctx context.Context, status models.SuggestionStatus) ([]models.MenuSuggestion, error)
	AcceptSuggestion(ctx context.Context, suggestionID int64, actingUserID int64) (models.AcceptedRange, error)
	RejectSuggestion(ctx context.Context, suggestionID int64) error
}

// ClientRecordsService submits feedback and operational records.
type ClientRecordsService interface {
	SubmitFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error)
	RecordConsumption(ctx context.Context, record models.ConsumptionRecord) (models.ConsumptionRecord, error)
	RecordWaste(ctx context.Context, record models.WasteRecord) (models.WasteRecord, error)
}

// ClientSessionJob is a background worker that keeps the credential snapshot
// fresh while the client runs.
type ClientSessionJob interface {
	// Start launches the background refresh goroutine. It revalidates the
	// session every interval, defaulting to 5 minutes if interval is zero or
	// negative. Any previously running job is stopped before the new one
	// begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
