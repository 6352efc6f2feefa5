package models

import "time"

// Credential is the client-held proof of authentication: the signed token,
// a snapshot of the authenticated user, and the absolute expiry instant set
// at issuance.
//
// A Credential past its expiry is treated as absent everywhere — the session
// controller clears it without a network call. VerifiedAt records the last
// successful server-side revalidation and drives the staleness window.
type Credential struct {
	// Token is the compact signed JWT issued at login or registration.
	Token string `json:"token"`

	// User is the principal snapshot embedded at issuance and refreshed
	// on every successful revalidation.
	User User `json:"user"`

	// ExpiresAt is the absolute expiry instant (issuance time + token TTL).
	ExpiresAt time.Time `json:"expires_at"`

	// VerifiedAt is when the snapshot was last confirmed against the server.
	VerifiedAt time.Time `json:"verified_at"`
}

// Expired reports whether the credential's expiry instant has passed.
func (c Credential) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// FreshWithin reports whether the snapshot was verified recently enough that
// no revalidation is required.
func (c Credential) FreshWithin(window time.Duration, now time.Time) bool {
	return now.Sub(c.VerifiedAt) < window
}

// SessionState describes the credential slot's position in the
// Absent → Valid → (Stale | Absent) state machine.
type SessionState int

const (
	// SessionAbsent means no usable credential is persisted: either the slot
	// is empty or the stored credential has expired or failed verification.
	SessionAbsent SessionState = iota

	// SessionValid means a credential is present, unexpired, and its user
	// snapshot is inside the staleness window.
	SessionValid

	// SessionStale means the credential is present and unexpired but the
	// snapshot's staleness window has elapsed; the next access triggers
	// revalidation.
	SessionStale
)

// String returns a human-readable name for the session state.
func (s SessionState) String() string {
	switch s {
	case SessionValid:
		return "valid"
	case SessionStale:
		return "stale"
	default:
		return "absent"
	}
}
