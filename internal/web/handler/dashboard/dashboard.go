// Package dashboard implements the protected dashboard page showing the current user.
package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/web/handler"
	"github.com/routeguard/routeguard/internal/web/navigation"
)

const (
	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"
)

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	client *authclient.Client
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, client *authclient.Client) error {
	if app == nil || cfg == nil || client == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.client = client

	app.Get(cfg.Routes.Dashboard, s.Get)

	return nil
}

// Get renders the dashboard for the user of the token cookie.
// A token the API does not accept is dropped and the user is sent to the login page.
func (s *Service) Get(c *fiber.Ctx) error {
	client := handler.Client(c, s.client)

	user, err := client.GetCurrentUser(c.UserContext())
	if errors.Is(err, authclient.ErrFetchFailed) {
		log.Debug().Err(err).Msg("no valid token, back to login")

		// the client already dropped a token the API answered 401 for
		var apiErr *authclient.Error
		if !errors.As(err, &apiErr) || apiErr.StatusCode != fiber.StatusUnauthorized {
			client.Logout()
		}

		return c.Redirect(s.cfg.Routes.Login, fiber.StatusFound)
	}

	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, handler.ErrorMessage(c, err))
	}

	nav := navigation.NewContext("Dashboard", "dashboard", "dashboard").
		AddBreadcrumb("Home", s.cfg.Routes.Dashboard, false).
		AddBreadcrumb("Dashboard", s.cfg.Routes.Dashboard, true).
		AddMenu("Dashboard", s.cfg.Routes.Dashboard, "dashboard").
		AddMenu("Logout", handler.LogoutPath, "logout")

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"User":       user,
		"LogoutPath": handler.LogoutPath,
	}, handler.BaseLayout)
}
