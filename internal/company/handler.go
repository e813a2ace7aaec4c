package company

import (
	"context"
	"net/http"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListCompanies(ctx context.Context) ([]*Company, error)
	ListAuthorized(ctx context.Context, principal *internal.User) ([]*Company, error)
	GetCompany(ctx context.Context, id string) (*Company, error)
	CreateCompany(ctx context.Context, dto CreateCompanyDTO) (*Company, error)
	UpdateCompany(ctx context.Context, id string, dto UpdateCompanyDTO) (*Company, error)
	DeleteCompany(ctx context.Context, id string) error
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

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Service.ListCompanies(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, companies)
}

// ListAuthorized handles GET /companies/authorized
func (h *Handler) ListAuthorized(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	companies, err := h.Service.ListAuthorized(r.Context(), u)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, companies)
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetCompany(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var dto CreateCompanyDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	c, err := h.Service.CreateCompany(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var dto UpdateCompanyDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	c, err := h.Service.UpdateCompany(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCompany(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteSuccess(w)
}
