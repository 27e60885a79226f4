// Package auth guards the MCP endpoint with a static bearer token.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware returns middleware that admits a request only when its
// Authorization header is exactly "Bearer <token>". The prefix is
// case-sensitive and takes exactly one space. An empty token disables the
// check. Rejected requests get a 401 with a WWW-Authenticate challenge and
// never reach next.
//
// The returned function satisfies mux.MiddlewareFunc.
func NewAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		want := []byte(token)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided, ok := bearerToken(r)
			if !ok || subtle.ConstantTimeCompare([]byte(provided), want) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="confcms-mcp"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts a non-empty token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	t := h[len(bearerPrefix):]
	return t, t != ""
}
