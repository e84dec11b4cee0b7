package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/nelindogu/userdir/internal/config"
	"github.com/nelindogu/userdir/internal/metrics"
	"github.com/nelindogu/userdir/server/authflowrepo"
	"github.com/nelindogu/userdir/session"
	"github.com/nelindogu/userdir/users"
)

// OidcConfig bundles the discovered provider with the oauth2 exchange
// configuration and the ID token verifier derived from it.
type OidcConfig struct {
	OidcProvider *oidc.Provider
	OAuth2Config *oauth2.Config
	OidcVerifier *oidc.IDTokenVerifier
}

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	users    users.Repo
	sessions *session.Manager
	metrics  *metrics.Collector
	pending  authflowrepo.Repo

	oidc     *OidcConfig
	oidcLock sync.RWMutex
}

func New(cfg config.Config, userRepo users.Repo, sessionManager *session.Manager, collector *metrics.Collector) (*Server, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("[Server New] user repo is required")
	}
	if sessionManager == nil {
		return nil, fmt.Errorf("[Server New] session manager is required")
	}
	if collector == nil {
		return nil, fmt.Errorf("[Server New] metrics collector is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		users:    userRepo,
		sessions: sessionManager,
		metrics:  collector,
		pending:  authflowrepo.NewInMemoryRepo(),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := MethodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
