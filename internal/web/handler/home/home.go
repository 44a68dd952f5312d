// Package home implements the public landing page.
package home

import (
	"github.com/gofiber/fiber/v2"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/web/handler"
)

// TemplateName is the name of the home template.
const TemplateName = "home"

// Service is the home handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the home handler.
var Handler = Service{}

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, client *authclient.Client) error {
	if app == nil || cfg == nil || client == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg

	app.Get(cfg.Routes.Home, s.Get)

	return nil
}

// Get renders the home page. Logged in users never get here, the guard sends them to the dashboard.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title":        s.cfg.Title,
		"LoginPath":    s.cfg.Routes.Login,
		"RegisterPath": handler.RegisterPath,
	}, handler.BaseLayout)
}
