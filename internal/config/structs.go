package config

import (
	"time"

	"github.com/routeguard/routeguard/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Log       logger.Log
	Title     string
	Webserver Webserver
	API       API
	Cookie    Cookie
	Routes    Routes
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}

// API holds the settings of the external auth API.
type API struct {
	BaseURL string        // e.g. http://localhost:8000, API_URL overrides it
	Timeout time.Duration // per request round trip
}

// Cookie holds the token cookie settings. The cookie is Secure unless DevMode is set.
type Cookie struct {
	Name     string
	MaxAge   int    // seconds
	SameSite string // Strict, Lax or None
}

// Routes holds the paths the route guard works with.
type Routes struct {
	Protected string   // prefix requiring a token
	Home      string   // exact home path
	Login     string   // redirect target without token
	Dashboard string   // redirect target with token
	Verify    string   // auth page prefix reachable with token
	AuthPages []string // prefixes unreachable with token
	Include   []string // regexps of paths the guard sees, empty = all
	Exclude   []string // regexps of paths the guard never sees
}
