// Package cookiestore keeps the auth token in the cookie of a fiber request.
package cookiestore

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/routeguard/routeguard/internal/authclient"
)

// Store is an authclient.TokenStore reading the request Cookie header and
// writing Set-Cookie on the response. It lives as long as the request.
type Store struct {
	ctx *fiber.Ctx

	// written during this request, "" marks a cleared cookie
	written map[string]string
}

var _ authclient.TokenStore = (*Store)(nil)

// New returns the store of the request.
func New(c *fiber.Ctx) *Store {
	return &Store{ctx: c, written: make(map[string]string)}
}

// Get returns the cookie value. Cookies set or cleared earlier in the same
// request win over the request header.
func (s *Store) Get(name string) (string, bool) {
	if v, ok := s.written[name]; ok {
		return v, v != ""
	}

	return Token(s.ctx, name)
}

// Set writes the cookie to the response.
func (s *Store) Set(name, value string, attrs authclient.CookieAttributes) {
	s.written[name] = value

	cookie := &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     attrs.Path,
		MaxAge:   attrs.MaxAge,
		Expires:  attrs.Expires,
		Secure:   attrs.Secure,
		SameSite: attrs.SameSite,
	}

	s.ctx.Cookie(cookie)
}

// Clear expires the cookie on the client.
func (s *Store) Clear(name string) {
	s.written[name] = ""

	s.ctx.Cookie(&fiber.Cookie{
		Name:    name,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
	})
}

// Token returns the named cookie of the request when it is set and not empty.
func Token(c *fiber.Ctx, name string) (string, bool) {
	v, ok := authclient.TokenFromCookieHeader(string(c.Request().Header.Peek(fiber.HeaderCookie)), name)
	if !ok || v == "" {
		return "", false
	}

	return v, true
}
