package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeguard/routeguard/internal/web/handler/handlertest"
	"github.com/routeguard/routeguard/internal/web/matcher"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := handlertest.NewConfig()
	cfg.DevMode = false
	cfg.Routes.Exclude = matcher.DefaultExclude
	cfg.Log.DisableCheckAlive = true

	s, err := New(cfg, handlertest.FakeAPI(t, cfg))
	require.NoError(t, err)

	s.fastShutDown = true

	return s
}

func do(t *testing.T, s *Service, method, target, cookie string, form url.Values) (*http.Response, string) {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}

	if cookie != "" {
		req.Header.Set(fiber.HeaderCookie, cookie)
	}

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	_ = resp.Body.Close()

	return resp, string(raw)
}

func TestService_Guard(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name     string
		target   string
		cookie   string
		status   int
		location string
	}{
		{"dashboard without token", "/dashboard", "", fiber.StatusFound, "/auth/login"},
		{"home with token", "/", "token=" + handlertest.Token, fiber.StatusFound, "/dashboard"},
		{"register with token", "/auth/register", "token=" + handlertest.Token, fiber.StatusFound, "/dashboard"},
		{"verify with token", "/auth/verify?token=x", "token=" + handlertest.Token, fiber.StatusOK, ""},
		{"home without token", "/", "", fiber.StatusOK, ""},
		{"login without token", "/auth/login", "", fiber.StatusOK, ""},
		{"static is not guarded", "/static/style.css", "token=" + handlertest.Token, fiber.StatusOK, ""},
		{"checkalive", "/checkalive", "", fiber.StatusOK, ""},
		{"metrics", "/metrics", "", fiber.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := do(t, s, http.MethodGet, tt.target, tt.cookie, nil)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get(fiber.HeaderLocation))
			assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
		})
	}
}

func TestService_LoginFlow(t *testing.T) {
	s := newTestService(t)

	resp, body := do(t, s, http.MethodGet, "/auth/login", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<form method="post">`)

	resp, body = do(t, s, http.MethodPost, "/auth/login", "", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid credentials")

	resp, _ = do(t, s, http.MethodPost, "/auth/login", "", url.Values{
		"email":    {"alice@example.com"},
		"password": {"secret"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get(fiber.HeaderLocation))

	cookie := "token=" + handlertest.Token
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), cookie)

	resp, body = do(t, s, http.MethodGet, "/dashboard", cookie, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Hello Alice")
	assert.Contains(t, body, "alice@example.com")

	resp, _ = do(t, s, http.MethodPost, "/logout", cookie, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), "expires=Thu, 01 Jan 1970 00:00:00 GMT")
}

func TestService_RegisterFlow(t *testing.T) {
	s := newTestService(t)

	resp, _ := do(t, s, http.MethodPost, "/auth/register", "", url.Values{
		"email":    {"bob@example.com"},
		"password": {"pw"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login?registered=1", resp.Header.Get(fiber.HeaderLocation))

	resp, body := do(t, s, http.MethodGet, "/auth/login?registered=1", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Your account was created")
}

func TestService_CheckAliveDuringShutdown(t *testing.T) {
	s := newTestService(t)

	assert.True(t, s.Alive())

	s.alive.Store(false)

	resp, _ := do(t, s, http.MethodGet, "/checkalive", "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestNew_InvalidExcludePattern(t *testing.T) {
	cfg := handlertest.NewConfig()
	cfg.Routes.Exclude = []string{"("}

	_, err := New(cfg, handlertest.FakeAPI(t, cfg))
	assert.Error(t, err)
}
