package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// apiKeyHeader carries the client credential on every protected route.
const apiKeyHeader = "X-API-Key"

// apiKeyMiddleware rejects requests whose credential does not match the
// configured key. The comparison is constant time.
func apiKeyMiddleware(expectedKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(apiKeyHeader)
			if key == "" {
				sendError(w, "Missing "+apiKeyHeader+" header", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(expectedKey)) != 1 {
				sendError(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON writes the standard response envelope.
func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func sendSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, APIResponse{Success: false, Error: message})
}
