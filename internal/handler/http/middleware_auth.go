package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-mess-manager/internal/app"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// verifies it via [service.AuthService.VerifyToken] — which re-reads the
// principal from the store, so demotions and deletions bite immediately —
// and stores the verified user in the request context under
// [utils.PrincipalCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with 401 UNAUTHENTICATED in the following
// cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]).
//   - The token has expired ([service.ErrTokenIsExpired]).
//   - The token is otherwise invalid, or its principal no longer exists.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			authFailuresTotal.WithLabelValues("missing_header").Inc()
			_, _ = utils.WriteAPIError(w, http.StatusUnauthorized, app.MsgAuthenticationRequired, models.CodeUnauthenticated)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			authFailuresTotal.WithLabelValues("malformed_header").Inc()
			_, _ = utils.WriteAPIError(w, http.StatusUnauthorized, app.MsgAuthenticationRequired, models.CodeUnauthenticated)
			return
		}

		ctx := r.Context()
		principal, err := h.services.AuthService.VerifyToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				log.Warn().Err(err).Msg("token expired")
				authFailuresTotal.WithLabelValues("expired").Inc()
				_, _ = utils.WriteAPIError(w, http.StatusUnauthorized, app.MsgTokenIsExpired, models.CodeUnauthenticated)
				return
			case errors.Is(err, service.ErrPrincipalNotFound):
				log.Warn().Err(err).Msg("token principal no longer exists")
				authFailuresTotal.WithLabelValues("principal_gone").Inc()
				_, _ = utils.WriteAPIError(w, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid, models.CodeUnauthenticated)
				return
			default:
				log.Warn().Err(err).Msg("token verification failed")
				authFailuresTotal.WithLabelValues("invalid").Inc()
				_, _ = utils.WriteAPIError(w, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid, models.CodeUnauthenticated)
				return
			}
		}

		// Store the verified principal in the context so that downstream
		// handlers and the role gate can use it without re-verifying.
		ctx = context.WithValue(ctx, utils.PrincipalCtxKey, principal)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value via [utils.ParseBearerToken], mapping its
// failures onto this package's sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — the value is not a two-part
//     "Bearer <token>" header; other schemes (e.g. Basic) are rejected.
//   - [ErrEmptyToken] — the Bearer scheme is present but the token is empty.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	tokenString, err := utils.ParseBearerToken(authHeader)
	switch {
	case err == nil:
		return tokenString, nil
	case errors.Is(err, utils.ErrEmptyBearerToken):
		return "", ErrEmptyToken
	default:
		return "", ErrInvalidAuthorizationHeader
	}
}
