// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// mess-manager server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not match any existing user record.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired is returned when a JWT bearer token is syntactically
	// valid but its expiry time has passed.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgAuthenticationRequired is returned when a protected route is hit
	// without any Authorization header.
	MsgAuthenticationRequired = "authentication required"

	// MsgAccessDenied is returned when the authenticated user's role is not
	// in the route's allowed set.
	MsgAccessDenied = "access denied"

	// MsgEmailAlreadyExists is returned when a registration attempt is
	// rejected because the requested email is already in use.
	MsgEmailAlreadyExists = "email already exists"

	// MsgUserNotFound is returned when a user lookup by id or email matches
	// no account.
	MsgUserNotFound = "user not found"

	// MsgUserHasDependencies is returned when user deletion is refused
	// because other records still reference the account.
	MsgUserHasDependencies = "user has dependent records"

	// MsgSuggestionNotFound is returned when a suggestion id matches no row.
	MsgSuggestionNotFound = "menu suggestion not found"

	// MsgSuggestionNotPending is returned when an accept or reject transition
	// targets an already decided suggestion.
	MsgSuggestionNotPending = "menu suggestion has already been decided"

	// MsgSuggestionExpired is returned when an accept targets a PENDING
	// suggestion whose date range already passed.
	MsgSuggestionExpired = "menu suggestion has expired"

	// MsgFoodItemNotFound is returned when a referenced food item does not
	// exist in the catalog.
	MsgFoodItemNotFound = "food item not found"

	// MsgRegistrationFailed is returned when the registration handler
	// encounters an unexpected error that prevents account creation.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when the login handler encounters an
	// unexpected error that prevents issuing a session token.
	MsgLoginFailed = "login failed"

	// MsgCurrentPasswordIncorrect is returned when a password change is
	// attempted with a wrong current password.
	MsgCurrentPasswordIncorrect = "current password is incorrect"
)
