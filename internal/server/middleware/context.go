// Package middleware holds the HTTP middleware for the license server: client
// identity propagation and admin authentication.
package middleware

import (
	"context"
	"net"
	"net/http"
)

type contextKey struct{ name string }

var (
	clientIPKey = contextKey{"client_ip"}
	actorKey    = contextKey{"actor"}
)

// WithClientIP is a middleware that stores the request's client IP in the context.
// Mount after chi's RealIP so proxy headers are already resolved into RemoteAddr.
func WithClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientIPKey, ip)))
	})
}

// GetClientIP returns the client IP stored by WithClientIP, or "" if unset.
func GetClientIP(ctx context.Context) string {
	v, _ := ctx.Value(clientIPKey).(string)
	return v
}

// WithActor returns a context with the acting identity set (e.g. "admin").
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor returns the actor from context and true if set; otherwise "", false.
func GetActor(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(actorKey).(string)
	return v, ok
}
