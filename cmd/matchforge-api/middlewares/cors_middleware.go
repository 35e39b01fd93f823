package middlewares

import (
	"net/http"
	"os"
	"strings"
)

// CORSMiddleware adds permissive CORS headers for the simulator and any
// browser-based dashboard polling the engine. Supports multiple origins via
// CORS_ALLOWED_ORIGINS (comma-separated), falling back to a single origin or
// localhost defaults.
type CORSMiddleware struct {
	allowedOrigins map[string]bool
	defaultOrigin  string
}

func NewCORSMiddleware() *CORSMiddleware {
	m := &CORSMiddleware{
		allowedOrigins: make(map[string]bool),
		defaultOrigin:  "http://localhost:3030",
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				m.allowedOrigins[origin] = true
			}
		}
	}

	if single := os.Getenv("CORS_ALLOWED_ORIGIN"); single != "" {
		m.allowedOrigins[single] = true
		m.defaultOrigin = single
	}

	m.allowedOrigins["http://localhost:3030"] = true
	m.allowedOrigins["http://localhost:3000"] = true

	return m
}

func (m *CORSMiddleware) isOriginAllowed(origin string) bool {
	return m.allowedOrigins[origin]
}

func (m *CORSMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowedOrigin := m.defaultOrigin
		if origin != "" && m.isOriginAllowed(origin) {
			allowedOrigin = origin
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
