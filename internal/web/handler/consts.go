package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RegisterPath is the registration page.
	RegisterPath = "/auth/register"

	// LogoutPath is the logout endpoint.
	LogoutPath = "/logout"

	// RegisteredQuery is appended to the login page after a successful registration.
	RegisteredQuery = "registered"

	// ErrNilACCFatalLogMsg is used if app, cfg or client pointer is nil.
	ErrNilACCFatalLogMsg = "app, cfg or client is nil"

	// ErrMsgUnavailable is shown when the auth API can't be reached.
	ErrMsgUnavailable = "The authentication service is unavailable, please try again later"
)
