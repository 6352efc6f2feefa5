// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Failure modes of "Authorization" header parsing in the auth middleware.
// All three map to the same 401 response; the split exists for logging and
// for the middleware tests.
var (
	// ErrEmptyAuthorizationHeader: the header is missing entirely.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader: the header cannot be split into a
	// scheme and a token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken: the "Bearer" scheme is there but the token is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
