package receipt

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Generate(ctx context.Context, extraID string) (*Receipt, error)
	Get(ctx context.Context, extraID string) (*Receipt, error)
	Delete(ctx context.Context, extraID string) error
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

// GenerateReceipt handles POST /recibos
func (h *Handler) GenerateReceipt(w http.ResponseWriter, r *http.Request) {
	var dto GenerateDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	rec, err := h.Service.Generate(r.Context(), dto.ExtraID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, NewReceiptResponse(rec))
}

// GetReceipt handles GET /recibos/{extraId}
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Service.Get(r.Context(), chi.URLParam(r, "extraId"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, NewReceiptResponse(rec))
}

// DownloadReceipt handles GET /recibos/{extraId}/pdf
func (h *Handler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Service.Get(r.Context(), chi.URLParam(r, "extraId"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(len(rec.PDF)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rec.PDF); err != nil {
		h.Logger.Error("failed to write receipt pdf", "error", err, "extra_id", rec.ExtraID)
	}
}

// DeleteReceipt handles DELETE /recibos/{extraId}
func (h *Handler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "extraId")); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteSuccess(w)
}
