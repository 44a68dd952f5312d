package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/web/cookiestore"
)

// ErrNilDependency is returned by Init if app, cfg or client is nil.
var ErrNilDependency = errors.New(ErrNilACCFatalLogMsg)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, client *authclient.Client) error
}

// Client binds client to the token cookie of the request.
func Client(c *fiber.Ctx, client *authclient.Client) *authclient.Client {
	return client.With(cookiestore.New(c))
}

// ErrorMessage returns the message to show for a failed API call.
// API errors carry their own message, anything else is logged and hidden.
func ErrorMessage(c *fiber.Ctx, err error) string {
	var apiErr *authclient.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("auth api request failed")

	return ErrMsgUnavailable
}
