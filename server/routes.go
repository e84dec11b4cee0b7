package server

func (s *Server) initRoutes() {
	// "{$}" pins the pattern to the exact root; unknown paths 404 instead of
	// falling through to the home page.
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.HomeHandler(), s.HTMLMiddleware(s.WithIdentity())...))
	s.RegisterRouteHandler("GET "+RouteProfile, ChainMiddleware(s.ProfileHandler(), s.HTMLMiddleware(s.WithIdentity())...))
	s.RegisterRouteHandler("GET "+RouteUsers, ChainMiddleware(s.UsersHandler(), s.HTMLMiddleware()...))

	// Identity provider round trip
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleware()...))

	// The promhttp handler negotiates its own content type, so it skips the
	// HTML header stamp.
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())
}
