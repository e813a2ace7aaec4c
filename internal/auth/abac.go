package auth

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
)

// OwnerLookup resolves the submitter of an extra.
type OwnerLookup func(ctx context.Context, extraID string) (string, error)

// ABACPolicy decides on attributes of the principal and the resource owner.
type ABACPolicy struct{}

// CanAccessExtra lets managers through and limits everyone else to extras
// they submitted.
func (p *ABACPolicy) CanAccessExtra(u *internal.User, ownerID string) error {
	if u == nil || u.ID == "" {
		return internal.ErrUnauthorizedAccess
	}
	if u.IsManager() || u.ID == ownerID {
		return nil
	}
	return internal.ErrUnauthorizedAccess
}

// RequireABAC is a generic middleware wrapper that runs an ABAC check function.
func RequireABAC(abac *ABACPolicy, logger *slog.Logger, check func(a *ABACPolicy, u *internal.User, r *http.Request) error) func(next http.Handler) http.Handler {
	base := transport.NewBaseHandler(logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := base.CurrentUser(w, r)
			if !ok {
				return
			}
			if err := check(abac, u, r); err != nil {
				base.HandleServiceError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SQLOwnerLookup reads extras.user_id through sqlx.
func SQLOwnerLookup(db *sqlx.DB) OwnerLookup {
	query := db.Rebind("SELECT user_id FROM extras WHERE id = ?")
	return func(ctx context.Context, extraID string) (string, error) {
		var ownerID string
		if err := db.GetContext(ctx, &ownerID, query, extraID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", internal.ErrReceiptNotFound
			}
			return "", err
		}
		return ownerID, nil
	}
}

// RequireReceiptAccess guards /recibos/{extraId}. Managers skip the lookup.
func RequireReceiptAccess(lookup OwnerLookup, abac *ABACPolicy, logger *slog.Logger) func(next http.Handler) http.Handler {
	return RequireABAC(abac, logger, func(a *ABACPolicy, u *internal.User, r *http.Request) error {
		if u.IsManager() {
			return nil
		}
		extraID := chi.URLParam(r, "extraId")
		if extraID == "" {
			return internal.ErrUnauthorizedAccess
		}
		ownerID, err := lookup(r.Context(), extraID)
		if err != nil {
			return err
		}
		if err := a.CanAccessExtra(u, ownerID); err != nil {
			logger.WarnContext(r.Context(), "receipt access denied", "user_id", u.ID, "extra_id", extraID)
			return err
		}
		return nil
	})
}
