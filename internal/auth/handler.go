package auth

import (
	"context"
	"net/http"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/transport"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (AuthTokens, error)
	Refresh(ctx context.Context, dto RefreshTokenDTO) (AuthTokens, error)
	Authenticate(ctx context.Context, tokenString string) (*internal.User, error)
	ChangePassword(ctx context.Context, principal *internal.User, dto ChangePasswordDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	tokens, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, tokens)
}

// RefreshToken handles POST /auth/refresh
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	tokens, err := h.Service.Refresh(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout handles POST /auth/logout. Tokens are stateless, so this only
// confirms the bearer is still valid.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.CurrentUser(w, r); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// ChangePassword handles PUT /auth/password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}

	var dto ChangePasswordDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	if err := h.Service.ChangePassword(r.Context(), u, dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteSuccess(w)
}

// AuthMiddleware validates the bearer token and stores the reloaded user
// in the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.HandleServiceError(w, r, internal.NewUnauthorizedError("missing authorization token", internal.ErrCodeInvalidToken))
			return
		}

		principal, err := h.Service.Authenticate(r.Context(), token)
		if err != nil {
			h.HandleServiceError(w, r, err)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
