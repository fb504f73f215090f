package middleware

import (
	"net/http"
	"strings"
)

// Allowed CORS methods and headers.
var (
	CORSMethods = []string{http.MethodPost, http.MethodGet, http.MethodOptions}
	CORSHeaders = []string{"Content-Type", "Authorization"}
)

// CORS stamps the CORS headers on every response, including errors and
// requests that carry no Origin header.
func CORS(allowedOrigin string) func(next http.Handler) http.Handler {
	methods := strings.Join(CORSMethods, ",")
	headers := strings.Join(CORSHeaders, ",")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			next.ServeHTTP(w, r)
		})
	}
}
