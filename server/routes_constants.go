package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteHome    = "/"
	RouteLogin   = "/login"
	RouteLogout  = "/logout"
	RouteProfile = "/profile"
	RouteUsers   = "/users"

	// RouteCallback is the fixed path Google redirects back to with the
	// authorization result. It must match the redirect URI registered in the
	// Google Cloud console.
	RouteCallback = "/signin-google"

	RouteMetrics = "/metrics"
)
