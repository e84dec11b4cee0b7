package server

import (
	"context"
	"net/http"

	"github.com/nelindogu/userdir/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyIdentity stores the typed identity resolved from the session cookie
const ContextKeyIdentity ContextKey = "identity"

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "userdir_session"

// WithIdentity resolves the session cookie once per request and stores the
// typed identity in the context. An absent, malformed or expired cookie
// leaves the request anonymous; it never produces a user-visible error.
func (s *Server) WithIdentity() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				next(w, r)
				return
			}

			identity, err := s.sessions.Verify(cookie.Value)
			if err != nil {
				next(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next(w, r.WithContext(ctx))
		}
	}
}

// IdentityFromContext returns the identity resolved by WithIdentity. The
// second return value reports whether the request is authenticated.
func IdentityFromContext(ctx context.Context) (session.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(session.Identity)
	return identity, ok
}
