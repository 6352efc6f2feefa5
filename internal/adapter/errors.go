package adapter

import "errors"

// Transport-level sentinel errors mapped from HTTP status codes by
// mapHTTPError. Callers match them with errors.Is; the server's error
// message travels in the wrapped text.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable")
	ErrInternalServerError = errors.New("internal server error")
)
