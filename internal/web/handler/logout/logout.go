// Package logout implements the logout endpoint.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/web/handler"
)

// Path is the logout endpoint.
const Path = handler.LogoutPath

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	client *authclient.Client
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, client *authclient.Client) error {
	if app == nil || cfg == nil || client == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.client = client

	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)

	return nil
}

// Logout clears the token cookie and sends the user to the login page.
// It succeeds with and without a cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	client := handler.Client(c, s.client)

	if _, ok := client.Token(); ok {
		log.Debug().Msg("user logged out")
	}

	client.Logout()

	return c.Redirect(s.cfg.Routes.Login, fiber.StatusFound)
}
