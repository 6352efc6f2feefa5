package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-mess-manager/internal/app"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/internal/store"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
)

// apiErrorSpec pins the HTTP status, machine-readable code, and message for
// one business error.
type apiErrorSpec struct {
	target  error
	status  int
	code    string
	message string
}

// errorResponses is evaluated in order; the first errors.Is match wins.
// Specific business errors come before the catch-all storage failures.
var errorResponses = []apiErrorSpec{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, models.CodeValidationError, app.MsgInvalidDataProvided},
	{service.ErrInvalidMealType, http.StatusBadRequest, models.CodeValidationError, service.ErrInvalidMealType.Error()},
	{service.ErrInvalidDateRange, http.StatusBadRequest, models.CodeValidationError, service.ErrInvalidDateRange.Error()},
	{service.ErrInvalidQuantity, http.StatusBadRequest, models.CodeValidationError, service.ErrInvalidQuantity.Error()},
	{service.ErrInvalidRating, http.StatusBadRequest, models.CodeValidationError, service.ErrInvalidRating.Error()},
	{service.ErrInvalidRole, http.StatusBadRequest, models.CodeValidationError, service.ErrInvalidRole.Error()},

	{service.ErrWrongPassword, http.StatusUnauthorized, models.CodeUnauthenticated, app.MsgInvalidEmailPassword},
	{service.ErrTokenIsExpired, http.StatusUnauthorized, models.CodeUnauthenticated, app.MsgTokenIsExpired},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, models.CodeUnauthenticated, app.MsgTokenIsExpiredOrInvalid},
	{service.ErrPrincipalNotFound, http.StatusUnauthorized, models.CodeUnauthenticated, app.MsgTokenIsExpiredOrInvalid},

	{service.ErrInvalidState, http.StatusConflict, models.CodeInvalidState, app.MsgSuggestionNotPending},
	{service.ErrSuggestionExpired, http.StatusUnprocessableEntity, models.CodeSuggestionExpired, app.MsgSuggestionExpired},

	{store.ErrEmailAlreadyExists, http.StatusConflict, models.CodeConflictError, app.MsgEmailAlreadyExists},
	{store.ErrUserHasDependencies, http.StatusConflict, models.CodeConflictError, app.MsgUserHasDependencies},
	{store.ErrNoUserWasFound, http.StatusNotFound, models.CodeNotFound, app.MsgUserNotFound},
	{store.ErrSuggestionNotFound, http.StatusNotFound, models.CodeNotFound, app.MsgSuggestionNotFound},
	{store.ErrFoodItemNotFound, http.StatusNotFound, models.CodeNotFound, app.MsgFoodItemNotFound},
	{store.ErrNotFoundMenuEntry, http.StatusNotFound, models.CodeNotFound, "menu entry not found"},
	{store.ErrHolidayNotFound, http.StatusNotFound, models.CodeNotFound, "holiday schedule not found"},
}

// writeLoginError collapses "no such user" and "wrong password" into one
// indistinguishable 401 answer; everything else falls through to the shared
// mapper.
func (h *Handler) writeLoginError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, service.ErrWrongPassword) {
		logger.FromRequest(r).Warn().Err(err).Msg("login rejected")
		_, _ = utils.WriteAPIError(w, http.StatusUnauthorized, app.MsgInvalidEmailPassword, models.CodeUnauthenticated)
		return
	}

	h.writeBusinessError(w, r, err)
}

// writeBusinessError resolves err against the response table and writes the
// structured {statusCode, message, errorCode} payload. Anything unmatched is
// treated as a storage-layer failure and reported as 500 DATABASE_ERROR
// without leaking internals to the caller.
func (h *Handler) writeBusinessError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	for _, spec := range errorResponses {
		if errors.Is(err, spec.target) {
			if spec.status >= http.StatusInternalServerError {
				log.Err(err).Msg("request failed")
			} else {
				log.Warn().Err(err).Msg("request rejected")
			}
			_, _ = utils.WriteAPIError(w, spec.status, spec.message, spec.code)
			return
		}
	}

	log.Err(err).Msg("request failed with unexpected error")
	_, _ = utils.WriteAPIError(w, http.StatusInternalServerError, app.MsgInternalServerError, models.CodeDatabaseError)
}
