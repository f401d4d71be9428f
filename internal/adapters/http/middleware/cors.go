package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns an allow-all cross-origin middleware. The API is consumed by
// browser dashboards on arbitrary origins, so every origin, method, and header
// is accepted. Credentials stay disabled; browsers refuse them with a wildcard
// origin anyway.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	})
}
