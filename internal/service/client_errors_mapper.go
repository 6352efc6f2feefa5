// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-mess-manager/internal/adapter"
	"github.com/MKhiriev/go-mess-manager/internal/app"
	"github.com/MKhiriev/go-mess-manager/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgInvalidDataProvided:
			return ErrInvalidDataProvided
		}
		return ErrInvalidDataProvided

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidEmailPassword:
			return ErrWrongPassword
		case app.MsgTokenIsExpired:
			return ErrTokenIsExpired
		case app.MsgTokenIsExpiredOrInvalid, app.MsgAuthenticationRequired:
			return ErrTokenIsExpiredOrInvalid
		}
		return ErrTokenIsExpiredOrInvalid

	case errors.Is(err, adapter.ErrForbidden):
		return ErrAccessDenied

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgUserNotFound:
			return store.ErrNoUserWasFound
		case app.MsgSuggestionNotFound:
			return store.ErrSuggestionNotFound
		case app.MsgFoodItemNotFound:
			return store.ErrFoodItemNotFound
		}

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgEmailAlreadyExists:
			return store.ErrEmailAlreadyExists
		case app.MsgUserHasDependencies:
			return store.ErrUserHasDependencies
		case app.MsgSuggestionNotPending:
			return ErrInvalidState
		}

	case errors.Is(err, adapter.ErrUnprocessable):
		switch msg {
		case app.MsgSuggestionExpired:
			return ErrSuggestionExpired
		}
	}

	return err
}

// extractBody extracts the body from a message of the form "conflict: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
