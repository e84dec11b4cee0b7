package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/nelindogu/userdir/session"
)

// CallbackHandler receives the authorization result on the fixed callback
// path. Every failure mode surfaces as an anonymous redirect back to the
// home page; there is no dedicated error page.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")

		// Provider denied authorization (user cancelled, consent refused)
		if errorParam != "" {
			log.Warn().Str("error", errorParam).Str("description", errorDesc).Msg("provider denied authorization")
			s.failLogin(w, r)
			return
		}

		if code == "" || state == "" {
			log.Warn().Msg("callback missing code or state parameter")
			s.failLogin(w, r)
			return
		}

		loginState, err := s.pending.Get(state)
		if err != nil {
			log.Warn().Err(err).Msg("callback carried unknown state")
			s.failLogin(w, r)
			return
		}

		// Clean up state after use
		if err := s.pending.Delete(state); err != nil {
			log.Warn().Err(err).Msg("failed to delete login state")
		}

		oidcConfig, err := s.getOidcConfig(r.Context())
		if err != nil {
			log.Err(err).Msg("OIDC discovery failed during callback")
			s.failLogin(w, r)
			return
		}

		// Exchange authorization code for tokens using standard oauth2 library
		oauth2Token, err := oidcConfig.OAuth2Config.Exchange(
			r.Context(),
			code,
			oauth2.SetAuthURLParam("code_verifier", loginState.CodeVerifier),
		)
		if err != nil {
			log.Warn().Err(err).Msg("token exchange failed")
			s.failLogin(w, r)
			return
		}

		// Extract ID token and verify it
		rawIDToken, ok := oauth2Token.Extra("id_token").(string)
		if !ok {
			log.Warn().Msg("no ID token in exchange response")
			s.failLogin(w, r)
			return
		}

		idToken, err := oidcConfig.OidcVerifier.Verify(r.Context(), rawIDToken)
		if err != nil {
			log.Warn().Err(err).Msg("ID token verification failed")
			s.failLogin(w, r)
			return
		}

		var claims struct {
			Nonce string `json:"nonce"`
			Sub   string `json:"sub"`
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := idToken.Claims(&claims); err != nil {
			log.Warn().Err(err).Msg("failed to extract claims")
			s.failLogin(w, r)
			return
		}

		// Validate nonce to prevent replay attacks
		if claims.Nonce != loginState.Nonce {
			log.Warn().Msg("nonce mismatch in ID token")
			s.failLogin(w, r)
			return
		}

		token, err := s.sessions.Issue(session.Identity{
			Name:  claims.Name,
			Email: claims.Email,
		})
		if err != nil {
			log.Err(err).Msg("failed to issue session token")
			s.failLogin(w, r)
			return
		}

		s.SetSessionCookie(w, r, token, int(s.config.GetSessionTTL().Seconds()))
		s.metrics.RecordLogin()
		log.Info().Str("email", claims.Email).Msg("user logged in")

		returnPath := loginState.ReturnPath
		if returnPath == "" {
			returnPath = RouteHome
		}
		http.Redirect(w, r, returnPath, http.StatusSeeOther)
	}
}

// failLogin ends the flow as anonymous: no cookie, back to the home page.
func (s *Server) failLogin(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordLoginFailure()
	http.Redirect(w, r, RouteHome, http.StatusSeeOther)
}
