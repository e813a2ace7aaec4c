package middleware

import (
	"net/http"

	"github.com/frahmantamala/sistema-extras/pkg/logger"

	"github.com/google/uuid"
)

const TraceHeader = "X-Trace-ID"

// RequestID propagates X-Trace-ID, generating one when the caller sent none,
// and attaches it to the request logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set(TraceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
