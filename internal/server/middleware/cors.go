package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the upload form to call the API from any origin.
// Content-Disposition is exposed so browsers can read the download name.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{
			"Content-Disposition",
			RequestIDHeader,
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: 300,
	})
}
