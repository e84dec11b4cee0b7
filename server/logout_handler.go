package server

import (
	"net/http"
)

// LogoutHandler clears the session cookie and redirects home. The upstream
// Google session is left untouched.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearSessionCookie(w, r)
		http.Redirect(w, r, RouteHome, http.StatusSeeOther)
	}
}
