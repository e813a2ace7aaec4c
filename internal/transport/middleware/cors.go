package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the SPA origins to call the API with credentials. An empty
// list or "*" reflects any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", TraceHeader},
		ExposedHeaders:   []string{TraceHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		opts.AllowOriginFunc = func(string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}
	return cors.New(opts).Handler
}
