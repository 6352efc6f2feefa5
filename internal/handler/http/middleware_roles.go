package http

import (
	"net/http"

	"github.com/MKhiriev/go-mess-manager/internal/app"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
)

// requireRoles gates a route group by the principal's live role.
//
// It must be mounted after the auth middleware: the principal is read from
// the request context, and a missing principal is a 401, never a 403 — an
// unauthenticated caller must not learn whether the role would have passed.
//
// An empty roles list admits any authenticated principal.
func (h *Handler) requireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				log.Error().Msg("role gate reached without principal in context")
				_, _ = utils.WriteAPIError(w, http.StatusUnauthorized, app.MsgAuthenticationRequired, models.CodeUnauthenticated)
				return
			}

			if len(allowed) > 0 {
				if _, ok := allowed[principal.Role]; !ok {
					log.Warn().
						Int64("user_id", principal.UserID).
						Str("role", string(principal.Role)).
						Str("uri", r.RequestURI).
						Msg("role not allowed")
					authzDeniedTotal.WithLabelValues(string(principal.Role)).Inc()
					_, _ = utils.WriteAPIError(w, http.StatusForbidden, app.MsgAccessDenied, models.CodeForbidden)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
