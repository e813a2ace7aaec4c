package user

import (
	"context"
	"net/http"

	"github.com/frahmantamala/sistema-extras/internal/transport"
)

type ServiceAPI interface {
	ListUsers(ctx context.Context) ([]*User, error)
	GetUser(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, dto CreateUserDTO) (*User, error)
	UpdateUser(ctx context.Context, email string, dto UpdateUserDTO) (*User, error)
	DeleteUser(ctx context.Context, email string) error
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

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{email}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	email, err := h.PathParam(r, "email")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	u, err := h.Service.GetUser(r.Context(), email)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	u, err := h.Service.CreateUser(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, u)
}

// UpdateUser handles PUT /users/{email}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	email, err := h.PathParam(r, "email")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	var dto UpdateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	u, err := h.Service.UpdateUser(r.Context(), email, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /users/{email}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	email, err := h.PathParam(r, "email")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	if err := h.Service.DeleteUser(r.Context(), email); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteSuccess(w)
}
