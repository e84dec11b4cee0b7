package server

import (
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/nelindogu/userdir/server/authflowrepo"
)

// LoginHandler begins the provider challenge (GET /login): it records the
// pending login keyed by a fresh state value and redirects the browser to
// Google's authorization endpoint.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oidcConfig, err := s.getOidcConfig(r.Context())
		if err != nil {
			log.Err(err).Msg("OIDC discovery failed")
			http.Error(w, "Login is temporarily unavailable", http.StatusBadGateway)
			return
		}

		state := generateRandomString(32)
		nonce := generateRandomString(32)
		codeVerifier := generateRandomString(32)

		err = s.pending.Upsert(state, &authflowrepo.LoginState{
			CodeVerifier: codeVerifier,
			Nonce:        nonce,
			ReturnPath:   RouteHome,
			CreatedAt:    time.Now(),
		})
		if err != nil {
			log.Err(err).Msg("failed to store login state")
			http.Error(w, "Login is temporarily unavailable", http.StatusInternalServerError)
			return
		}

		authURL := oidcConfig.OAuth2Config.AuthCodeURL(state,
			oidc.Nonce(nonce),
			oauth2.SetAuthURLParam("code_challenge", generateCodeChallenge(codeVerifier)),
			oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		)
		http.Redirect(w, r, authURL, http.StatusSeeOther)
	}
}
