// Package guard implements the route guard middleware.
//
// It runs before the page handlers and redirects with 302 Found:
// visitors without a token away from protected pages, visitors with a token
// away from the home page and the auth pages.
package guard

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/guard"
	"github.com/routeguard/routeguard/internal/logger"
	accesslog "github.com/routeguard/routeguard/internal/logger/adapter/fiber"
	"github.com/routeguard/routeguard/internal/web/cookiestore"
)

var (
	decisions     *prometheus.CounterVec //nolint:gochecknoglobals
	decisionsOnce sync.Once              //nolint:gochecknoglobals
)

// Config implements the guard middleware config.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Policy decides every request.
	//
	// Optional. Default: guard.DefaultPolicy()
	Policy *guard.Policy

	// CookieName of the token cookie.
	//
	// Optional. Default: "token"
	CookieName string
}

func configDefault(config ...Config) Config {
	var cfg Config

	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Policy == nil {
		p := guard.DefaultPolicy()
		cfg.Policy = &p
	}

	if cfg.CookieName == "" {
		cfg.CookieName = authclient.DefaultCookieName
	}

	return cfg
}

// New creates the route guard middleware.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)
	policy := *cfg.Policy
	l := logger.Component("guard")

	decisionsOnce.Do(func() {
		decisions = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "route_guard_decisions_total",
				Help: "Number of route guard decisions, differentiated by rule and action.",
			},
			[]string{"rule", "action"},
		)
	})

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		_, hasToken := cookiestore.Token(c, cfg.CookieName)
		d := policy.Decide(c.Path(), hasToken)

		decisions.WithLabelValues(string(d.Rule), d.Action.String()).Inc()
		c.Locals(accesslog.LocalGuardRule, string(d.Rule))

		if d.Rule == guard.RuleMalformedPath {
			l.Warn().Str("path", c.Path()).Msg("malformed request path, passing through")
		}

		l.Debug().
			Str("path", c.Path()).
			Bool("token", hasToken).
			Str("rule", string(d.Rule)).
			Str("action", d.Action.String()).
			Str("location", d.Location).
			Msg("route guard decision")

		if !d.IsRedirect() {
			return c.Next()
		}

		return c.Redirect(d.Location, fiber.StatusFound)
	}
}
