// Package login implements the login page.
package login

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/web/handler"
)

const (
	// TemplateName is the name of the login template.
	TemplateName = "auth/login"
)

// Form is the submitted login form.
type Form struct {
	Email    string `form:"email"    json:"email"`
	Password string `form:"password" json:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	client *authclient.Client
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, client *authclient.Client) error {
	if app == nil || cfg == nil || client == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.client = client

	app.Get(cfg.Routes.Login, s.Get)
	app.Post(cfg.Routes.Login, s.Post)

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.Map{
		"registered": c.Query(handler.RegisteredQuery) != "",
	})
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.render(c, fiber.Map{"error": ErrInvalidFormData.Error()})
	}

	if form.Email == "" || form.Password == "" {
		return s.render(c, fiber.Map{"error": ErrMissingCredentials.Error(), "email": form.Email})
	}

	if _, err := handler.Client(c, s.client).Login(c.UserContext(), form.Email, form.Password); err != nil {
		log.Debug().Err(err).Str("email", form.Email).Msg("login failed")

		return s.render(c, fiber.Map{"error": handler.ErrorMessage(c, err), "email": form.Email})
	}

	log.Info().Str("email", form.Email).Msg("user logged in")

	return c.Redirect(s.cfg.Routes.Dashboard, fiber.StatusFound)
}

func (s *Service) render(c *fiber.Ctx, data fiber.Map) error {
	data["Title"] = s.cfg.Title
	data["RegisterPath"] = handler.RegisterPath

	if _, ok := data["email"]; !ok {
		data["email"] = ""
	}

	return c.Render(TemplateName, data, handler.BaseLayout)
}
