package apitest

import (
	"net/http"
	"strings"
)

// TokenAuthMiddleware rejects requests whose Authorization header does not
// carry one of keys as "Token <key>".
func TokenAuthMiddleware(keys map[string]bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, key, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || scheme != "Token" {
				WriteError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}
			if !keys[key] {
				WriteError(w, http.StatusUnauthorized, "Invalid token.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// recordMiddleware stores every request before it is handled.
func (s *Server) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}
