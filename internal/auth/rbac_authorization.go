package auth

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/transport"
)

// RBACAuthorization gates routes on the principal's role.
type RBACAuthorization struct {
	base   *transport.BaseHandler
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		base:   transport.NewBaseHandler(logger),
		logger: logger,
	}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := internal.UserFromContext(r.Context())
		if !ok {
			ra.logger.Warn("authorization check failed: user not found in context")
			ra.base.HandleServiceError(w, r, internal.NewUnauthorizedError("unauthorized", internal.ErrCodeInvalidToken))
			return
		}

		if !slices.Contains(roles, user.Role) {
			ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
				"user_id", user.ID,
				"role", user.Role,
				"required_roles", roles)
			ra.base.HandleServiceError(w, r, internal.ErrUnauthorizedAccess)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) Middleware(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, roles...)
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.Middleware(internal.RoleAdmin)
}

// RequireManager admits the roles that may approve extras.
func (ra *RBACAuthorization) RequireManager() func(http.Handler) http.Handler {
	return ra.Middleware(internal.RoleAdmin, internal.RoleGestor)
}
