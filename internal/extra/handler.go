package extra

import (
	"context"
	"net/http"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateExtra(ctx context.Context, principal *internal.User, dto CreateExtraDTO) (*Extra, error)
	CreateBatch(ctx context.Context, principal *internal.User, dto CreateBatchDTO) ([]*Extra, error)
	ListExtras(ctx context.Context, principal *internal.User) ([]*Extra, error)
	ListByUser(ctx context.Context, principal *internal.User, userID string) ([]*Extra, error)
	GetExtra(ctx context.Context, principal *internal.User, id string) (*Extra, error)
	UpdateExtra(ctx context.Context, principal *internal.User, id string, dto UpdateExtraDTO) (*Extra, error)
	DeleteExtra(ctx context.Context, principal *internal.User, id string) error
	ChangeStatus(ctx context.Context, principal *internal.User, id string, dto StatusDTO) (*Extra, error)
	ListWithDetails(ctx context.Context, principal *internal.User, filter Filter) ([]*ExtraDetail, error)
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

// CreateExtra handles POST /extras
func (h *Handler) CreateExtra(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto CreateExtraDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	e, err := h.Service.CreateExtra(r.Context(), u, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}

// CreateBatch handles POST /extras/batch
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto CreateBatchDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	extras, err := h.Service.CreateBatch(r.Context(), u, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, extras)
}

// ListExtras handles GET /extras
func (h *Handler) ListExtras(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	extras, err := h.Service.ListExtras(r.Context(), u)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, extras)
}

// ListByUser handles GET /extras/user/{userId}
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	extras, err := h.Service.ListByUser(r.Context(), u, chi.URLParam(r, "userId"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, extras)
}

// GetExtra handles GET /extras/{id}
func (h *Handler) GetExtra(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	e, err := h.Service.GetExtra(r.Context(), u, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

// UpdateExtra handles PUT /extras/{id}
func (h *Handler) UpdateExtra(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto UpdateExtraDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	e, err := h.Service.UpdateExtra(r.Context(), u, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

// DeleteExtra handles DELETE /extras/{id}
func (h *Handler) DeleteExtra(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteExtra(r.Context(), u, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteSuccess(w)
}

// ChangeStatus handles PUT /extras/{id}/status
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto StatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	e, err := h.Service.ChangeStatus(r.Context(), u, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

// ListWithDetails handles GET /extras-with-details
func (h *Handler) ListWithDetails(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	details, err := h.Service.ListWithDetails(r.Context(), u, FilterFromQuery(r.URL.Query()))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, details)
}
