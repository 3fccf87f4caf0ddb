package http

import (
	"context"
	"net/http"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, verifies it
// via [service.AuthService.Authenticate], and stores the resolved
// [models.Identity] in the request context under [utils.IdentityCtxKey]
// before delegating to the next handler. Any failure is HTTP 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(ErrInvalidAuthorizationHeader).Send()
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("authentication failed")
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		ctx = context.WithValue(ctx, utils.IdentityCtxKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole gates a route family behind a single role. Runs after auth.
func (h *Handler) requireRole(role models.Role) func(http.Handler) http.Handler {
	return h.requireAnyRole(role)
}

// requireAnyRole gates a route family behind a set of roles; membership in
// any one of them admits the caller. A caller without any of the roles gets
// HTTP 403.
func (h *Handler) requireAnyRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentityFromContext(r.Context())
			if !ok {
				writeError(w, r, service.ErrUnauthenticated)
				return
			}

			if !identity.Roles.HasAny(roles...) {
				logger.FromRequest(r).Warn().
					Int64("id", identity.UserID).
					Strs("roles", identity.Roles.Strings()).
					Msg("role gate rejected request")
				writeError(w, r, service.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requireFreshPassword rejects protected actions while the caller's
// must-change flag is set. Applied to the domain route families but not to
// the auth endpoints, so the caller can still change the password, refresh,
// and log out.
func (h *Handler) requireFreshPassword(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := utils.GetIdentityFromContext(r.Context())
		if !ok {
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		if identity.MustChangePassword {
			writeError(w, r, service.ErrPasswordChangeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
