package middleware

import (
	"context"
	"net/http"

	"github.com/quizhall/server/internal/sessions"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

// ResolveSession verifies the session cookie and, when valid, puts the
// session ID on the request context. It never rejects: endpoints like
// the score page must render with no session at all, so each handler
// decides what absence means.
func ResolveSession(codec *sessions.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sid, err := codec.SessionID(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), sessionIDKey, sid))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionID returns the verified session handle attached by ResolveSession.
func SessionID(r *http.Request) (string, bool) {
	sid, ok := r.Context().Value(sessionIDKey).(string)
	return sid, ok
}
