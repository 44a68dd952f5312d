// Package register implements the registration page.
package register

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/web/handler"
)

const (
	// Path is the path to the registration page.
	Path = handler.RegisterPath

	// TemplateName is the name of the registration template.
	TemplateName = "auth/register"

	msgInvalidForm = "invalid form data"
)

// Form is the submitted registration form.
type Form struct {
	Email    string `form:"email"     json:"email"`
	Password string `form:"password"  json:"password"`
	FullName string `form:"full_name" json:"full_name"`
}

// Service is the registration handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	client *authclient.Client
}

// Handler is the registration handler.
var Handler = Service{}

// Init initializes the registration handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, client *authclient.Client) error {
	if app == nil || cfg == nil || client == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.client = client

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get handles the registration page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.Map{"email": "", "full_name": ""})
}

// Post creates the account and sends the user to the login page.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.render(c, fiber.Map{"error": msgInvalidForm, "email": "", "full_name": ""})
	}

	user, err := handler.Client(c, s.client).Register(c.UserContext(), authclient.UserCreate{
		Email:    form.Email,
		Password: form.Password,
		FullName: form.FullName,
	})
	if err != nil {
		return s.render(c, fiber.Map{
			"error":     handler.ErrorMessage(c, err),
			"email":     form.Email,
			"full_name": form.FullName,
		})
	}

	log.Info().Str("email", user.Email).Interface("id", user.ID).Msg("user registered")

	return c.Redirect(s.cfg.Routes.Login+"?"+handler.RegisteredQuery+"=1", fiber.StatusFound)
}

func (s *Service) render(c *fiber.Ctx, data fiber.Map) error {
	data["Title"] = s.cfg.Title
	data["LoginPath"] = s.cfg.Routes.Login

	return c.Render(TemplateName, data, handler.BaseLayout)
}
