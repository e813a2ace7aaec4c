package internal

import (
	"context"
	"slices"
	"strings"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

const (
	RoleAdmin    = "admin"
	RoleGestor   = "gestor"
	RoleLancador = "lançador"
)

// NormalizeRole maps accepted spellings onto the canonical role names.
// It returns "" for unknown roles.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleGestor:
		return RoleGestor
	case RoleLancador, "lancador":
		return RoleLancador
	default:
		return ""
	}
}

// User is the authenticated principal carried through a request.
type User struct {
	ID                   string   `json:"id"`
	Email                string   `json:"email"`
	Name                 string   `json:"name"`
	Role                 string   `json:"role"`
	Setor                string   `json:"setor,omitempty"`
	AuthorizedCompanyIDs []string `json:"authorized_company_ids"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsManager reports whether the user may approve extras.
func (u *User) IsManager() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleGestor)
}

// CanAccessCompany is true for admins and for companies listed on the user.
func (u *User) CanAccessCompany(companyID string) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin() {
		return true
	}
	return slices.Contains(u.AuthorizedCompanyIDs, companyID)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok && u != nil
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

func UserIDFromContext(ctx context.Context) string {
	if u, ok := UserFromContext(ctx); ok {
		return u.ID
	}
	return ""
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
