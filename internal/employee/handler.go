package employee

import (
	"context"
	"net/http"

	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListEmployees(ctx context.Context, companyID string) ([]*Employee, error)
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	CreateEmployee(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error)
	UpdateEmployee(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
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

// ListEmployees handles GET /employees?company_id=
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context(), r.URL.Query().Get("company_id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	e, err := h.Service.CreateEmployee(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto UpdateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	e, err := h.Service.UpdateEmployee(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteSuccess(w)
}
