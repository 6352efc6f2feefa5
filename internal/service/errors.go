package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrPrincipalNotFound is returned by token verification when the account
	// the token was issued for no longer exists. The token is treated as
	// revoked.
	ErrPrincipalNotFound = errors.New("principal no longer exists")

	// ErrInvalidState is returned when an accept or reject transition targets
	// a suggestion that is no longer PENDING.
	ErrInvalidState = errors.New("suggestion is not in an acceptable state")

	// ErrSuggestionExpired is returned when an accept targets a PENDING
	// suggestion whose date range has already passed.
	ErrSuggestionExpired = errors.New("suggestion date range has expired")

	ErrInvalidMealType  = errors.New("invalid meal type")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrInvalidRole      = errors.New("unknown role")

	// ErrNotAuthenticated is returned by client services when no usable
	// credential is stored; the user must log in (again).
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAccessDenied is the client-side mapping of a 403 response: the
	// credential is fine, the role is not. Never evicts the stored credential.
	ErrAccessDenied = errors.New("access denied")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
