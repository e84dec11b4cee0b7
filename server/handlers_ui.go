package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/nelindogu/userdir/internal/errors"
	"github.com/nelindogu/userdir/session"
	"github.com/nelindogu/userdir/users"
)

var homeAuthenticatedTmpl = template.Must(template.New("home_authenticated").Parse(`<h1>Welcome, {{.Name}}!</h1>
<p>Email: {{.Email}}</p>
<p><a href='/profile'>Profile</a></p>
<p><a href='/logout'>Log out</a></p>
`))

var homeAnonymousTmpl = template.Must(template.New("home_anonymous").Parse(`<h1>Welcome!</h1>
<p><a href='/login'>Login with Google</a></p>
`))

var profileTmpl = template.Must(template.New("profile").Parse(`<h1>Profile</h1>
<p>Name: {{.Name}}</p>
<p>Email: {{.Email}}</p>
<p><a href='/users'>See all Users</a></p>
<p><a href='/logout'>Log out</a></p>
`))

var usersTmpl = template.Must(template.New("users").Parse(`<h1>All Users:</h1>
<p>{{range $i, $u := .Users}}{{if $i}}<br>{{end}}{{$u.Name}} ({{$u.Email}}){{end}}</p>
<p><a href='/'>Back to MainPage</a></p>
`))

// HomeHandler renders the landing page: a greeting for authenticated
// visitors, a login link for everyone else.
func (s *Server) HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)

		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			s.render(w, homeAnonymousTmpl, nil)
			return
		}
		s.render(w, homeAuthenticatedTmpl, identity)
	}
}

// ProfileHandler is the only gated route. The first authenticated visit with
// a non-empty email claim persists the visitor in the directory; later
// visits only read. Authentication is checked per request, not by a
// router-level gate.
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok || identity.Email == "" {
			// An authenticated session without an email claim is treated
			// exactly like no session at all.
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if err := s.ensureUser(r, identity); err != nil {
			log.Err(err).Str("email", identity.Email).Msg("failed to ensure user row")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		s.render(w, profileTmpl, identity)
	}
}

// ensureUser persists the visitor on first visit. The unique index on email
// makes the lookup-then-insert safe under concurrent first visits: the
// loser of the race sees ErrDuplicateEmail and carries on with the
// existing row. A returning visitor's stored name is never refreshed.
func (s *Server) ensureUser(r *http.Request, identity session.Identity) error {
	ctx := r.Context()

	_, err := s.users.GetByEmail(ctx, identity.Email)
	if err == nil {
		return nil
	}
	if !apperrors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	_, err = s.users.Create(ctx, users.DisplayName(identity.Name), identity.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrDuplicateEmail) {
			return nil
		}
		return err
	}

	s.metrics.RecordUserCreated()
	log.Info().Str("email", identity.Email).Msg("new user recorded")
	return nil
}

// UsersHandler lists the whole directory. Deliberately ungated.
func (s *Server) UsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := s.users.List(r.Context())
		if err != nil {
			log.Err(err).Msg("failed to list users")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		s.render(w, usersTmpl, map[string]interface{}{"Users": all})
	}
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Str("template", tmpl.Name()).Msg("failed to render template")
	}
}
