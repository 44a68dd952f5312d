// Package verify implements the email verification landing page.
// It is the one auth page a logged in user may still open.
package verify

import (
	"github.com/gofiber/fiber/v2"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/web/handler"
)

// TemplateName is the name of the verification template.
const TemplateName = "auth/verify"

// Service is the verification handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	client *authclient.Client
}

// Handler is the verification handler.
var Handler = Service{}

// Init initializes the verification handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, client *authclient.Client) error {
	if app == nil || cfg == nil || client == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.client = client

	app.Get(cfg.Routes.Verify, s.Get)

	return nil
}

// Get renders the page. The verification token arrives as ?token=.
func (s *Service) Get(c *fiber.Ctx) error {
	_, loggedIn := handler.Client(c, s.client).Token()

	return c.Render(TemplateName, fiber.Map{
		"Title":         s.cfg.Title,
		"HasToken":      c.Query("token") != "",
		"LoggedIn":      loggedIn,
		"LoginPath":     s.cfg.Routes.Login,
		"DashboardPath": s.cfg.Routes.Dashboard,
	}, handler.BaseLayout)
}
