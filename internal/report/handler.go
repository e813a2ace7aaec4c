package report

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/extra"
	"github.com/frahmantamala/sistema-extras/internal/transport"
)

type ServiceAPI interface {
	Summary(ctx context.Context, principal *internal.User, filter extra.Filter) (*Summary, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Export(ctx context.Context, principal *internal.User, filter extra.Filter, kind string) (*Export, error)
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

// Summary handles GET /reports/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	summary, err := h.Service.Summary(r.Context(), u, extra.FilterFromQuery(r.URL.Query()))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}

// Export handles GET /reports/export?kind=summary|detailed
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	export, err := h.Service.Export(r.Context(), u, extra.FilterFromQuery(q), q.Get("kind"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Content); err != nil {
		h.Logger.Error("failed to write report", "error", err, "filename", export.Filename)
	}
}

// Dashboard handles GET /dashboard/stats
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Dashboard(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}
