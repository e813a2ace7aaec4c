package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
)

// secretFields are replaced wholesale when they appear as a substring of a
// header name or JSON key.
var secretFields = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"api_key",
	"session",
	"credential",
}

// personalFields identify an employee. Their values keep only the last two
// characters so support can still match a log line to a record.
var personalFields = map[string]bool{
	"cpf":     true,
	"rg":      true,
	"pix_key": true,
}

// binaryFields hold embedded documents that are too large to log.
var binaryFields = map[string]bool{
	"pdf":     true,
	"pdf_url": true,
}

// quietPaths are polled by orchestrators and only logged at debug level.
var quietPaths = map[string]bool{
	"/api/ping":   true,
	"/api/health": true,
}

const (
	maxLoggedBody = 4096
	filtered      = "[FILTERED]"
)

func LoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())
			quiet := quietPaths[r.URL.Path]

			logRequest(logger, r, reqID, quiet)

			ww := &responseWriter{ResponseWriter: w, body: &bytes.Buffer{}}
			next.ServeHTTP(ww, r)

			logResponse(logger, r, ww, time.Since(start), reqID, quiet)
		})
	}
}

// responseWriter keeps the status, size and a bounded copy of the body.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
	body       *bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.size += len(b)
	if rw.body.Len() < maxLoggedBody {
		rw.body.Write(b)
	}
	return rw.ResponseWriter.Write(b)
}

func logRequest(logger *slog.Logger, r *http.Request, reqID string, quiet bool) {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	level := slog.LevelInfo
	if quiet {
		level = slog.LevelDebug
	}
	logger.Log(r.Context(), level, "incoming request",
		"request_id", reqID,
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
		"headers", redactHeaders(r.Header),
		"body", describeBody(r.Header.Get("Content-Type"), body, len(body)),
	)
}

func logResponse(logger *slog.Logger, r *http.Request, rw *responseWriter, duration time.Duration, reqID string, quiet bool) {
	status := rw.statusCode
	if status == 0 {
		status = http.StatusOK
	}

	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	case quiet:
		level = slog.LevelDebug
	}

	logger.Log(r.Context(), level, "response",
		"request_id", reqID,
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", status,
		"duration_ms", duration.Milliseconds(),
		"response_size", rw.size,
		"body", describeBody(rw.Header().Get("Content-Type"), rw.body.Bytes(), rw.size),
	)
}

// describeBody renders JSON bodies with personal data redacted. PDFs and
// xlsx exports are named by content type only.
func describeBody(contentType string, body []byte, size int) string {
	if size == 0 {
		return ""
	}
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		return "[" + contentType + "]"
	}
	if size > maxLoggedBody {
		return "[TRUNCATED]"
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		lower := strings.ToLower(string(body))
		for _, field := range secretFields {
			if strings.Contains(lower, field) {
				return "[FILTERED - Contains sensitive data]"
			}
		}
		return string(body)
	}

	out, err := json.Marshal(redactJSON(data))
	if err != nil {
		return "[ERROR - Failed to marshal filtered JSON]"
	}
	return string(out)
}

func isSecret(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range secretFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

func redactHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSecret(name) {
			out[name] = filtered
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func redactJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			lower := strings.ToLower(key)
			switch {
			case binaryFields[lower]:
				out[key] = "[OMITTED]"
			case personalFields[lower]:
				out[key] = maskTail(value)
			case isSecret(lower):
				out[key] = filtered
			default:
				out[key] = redactJSON(value)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = redactJSON(item)
		}
		return out
	default:
		return v
	}
}

// maskTail turns "123.456.789-09" into "***09".
func maskTail(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok || s == "" {
		return value
	}
	r := []rune(s)
	if len(r) <= 2 {
		return "***"
	}
	return "***" + string(r[len(r)-2:])
}
