package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/pkg/logger"
	"github.com/go-chi/chi"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response with a plain message
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.WriteJSON(w, status, internal.ErrorResponse{Error: message})
}

// WriteSuccess writes the {"success": true} body used by deletes.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter) {
	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleServiceError maps application errors onto their HTTP status and
// anything else onto a 500 that carries the raw error message.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.From(r.Context())

	if appErr, ok := internal.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		if status >= http.StatusInternalServerError {
			log.Error("request failed", "path", r.URL.Path, "error", err)
		} else {
			log.Warn("request rejected", "path", r.URL.Path, "status", status, "code", appErr.Code)
		}
		h.WriteJSON(w, status, body)
		return
	}

	log.Error("request failed", "path", r.URL.Path, "error", err)
	h.WriteError(w, http.StatusInternalServerError, err.Error())
}

// DecodeJSON reads exactly one JSON object from the request body,
// rejecting unknown fields.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return internal.NewValidationError("request body is required", internal.ErrCodeValidationFailed)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return internal.NewValidationError("request body is required", internal.ErrCodeValidationFailed)
		}
		return internal.NewValidationError("invalid request body: "+err.Error(), internal.ErrCodeValidationFailed)
	}
	if dec.More() {
		return internal.NewValidationError("unexpected additional JSON content", internal.ErrCodeValidationFailed)
	}
	return nil
}

// PathParam returns the decoded value of a route parameter. chi matches on
// the raw path, so clients that encode values (joao%40example.com) would
// otherwise reach the service still escaped.
func (h *BaseHandler) PathParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", internal.NewValidationFieldError(name, "invalid "+name+" in path", internal.ErrCodeValidationFailed)
	}
	return value, nil
}

// CurrentUser returns the authenticated principal or writes a 401.
func (h *BaseHandler) CurrentUser(w http.ResponseWriter, r *http.Request) (*internal.User, bool) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return u, true
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(prefix):])
}
