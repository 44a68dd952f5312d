package login_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/web/handler"
	"github.com/routeguard/routeguard/internal/web/handler/handlertest"
	"github.com/routeguard/routeguard/internal/web/handler/login"
)

func TestGet_RendersLoginPage(t *testing.T) {
	cfg := handlertest.NewConfig()
	app := handlertest.NewApp()

	var s login.Service
	require.NoError(t, s.Init(app, cfg, handlertest.FakeAPI(t, cfg)))

	resp := handlertest.Do(t, app, http.MethodGet, "/auth/login?registered=1", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, login.TemplateName, handlertest.Body(t, resp))
}

func TestPost_Success_SetsCookieAndRedirects(t *testing.T) {
	cfg := handlertest.NewConfig()
	cfg.DevMode = false // Secure cookie expected

	app := handlertest.NewApp()

	var s login.Service
	require.NoError(t, s.Init(app, cfg, handlertest.FakeAPI(t, cfg)))

	resp := handlertest.Do(t, app, http.MethodPost, "/auth/login", "", url.Values{
		"email":    {"alice@example.com"},
		"password": {"secret"},
	})

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	setCookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, setCookie, "token="+handlertest.Token)
	assert.Contains(t, setCookie, "max-age=86400")
	assert.Contains(t, setCookie, "path=/")
	assert.Contains(t, strings.ToLower(setCookie), "secure")
	assert.Contains(t, strings.ToLower(setCookie), "samesite=strict")
}

func TestPost_Success_DevModeDisablesSecure(t *testing.T) {
	cfg := handlertest.NewConfig()
	cfg.DevMode = true

	app := handlertest.NewApp()

	var s login.Service
	require.NoError(t, s.Init(app, cfg, handlertest.FakeAPI(t, cfg)))

	resp := handlertest.Do(t, app, http.MethodPost, "/auth/login", "", url.Values{
		"email":    {"alice@example.com"},
		"password": {"secret"},
	})

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.NotContains(t, strings.ToLower(resp.Header.Get("Set-Cookie")), "secure")
}

func TestPost_InvalidCredentials_RendersAPIMessage(t *testing.T) {
	cfg := handlertest.NewConfig()
	app := handlertest.NewApp()

	var s login.Service
	require.NoError(t, s.Init(app, cfg, handlertest.FakeAPI(t, cfg)))

	resp := handlertest.Do(t, app, http.MethodPost, "/auth/login", "", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Set-Cookie"), "no cookie on failed login")
	assert.Equal(t, "Invalid credentials", handlertest.Body(t, resp))
}

func TestPost_MissingFields(t *testing.T) {
	cfg := handlertest.NewConfig()
	app := handlertest.NewApp()

	var s login.Service
	require.NoError(t, s.Init(app, cfg, handlertest.FakeAPI(t, cfg)))

	resp := handlertest.Do(t, app, http.MethodPost, "/auth/login", "", url.Values{"email": {"alice@example.com"}})

	assert.Equal(t, login.ErrMissingCredentials.Error(), handlertest.Body(t, resp))
}

func TestPost_APIUnavailable(t *testing.T) {
	cfg := handlertest.NewConfig()
	app := handlertest.NewApp()
	cfg.API.BaseURL = "http://127.0.0.1:1"

	var s login.Service
	require.NoError(t, s.Init(app, cfg, authclient.New(cfg.ClientConfig(), authclient.NewMemoryStore())))

	resp := handlertest.Do(t, app, http.MethodPost, "/auth/login", "", url.Values{
		"email":    {"alice@example.com"},
		"password": {"secret"},
	})

	assert.Equal(t, handler.ErrMsgUnavailable, handlertest.Body(t, resp))
}

func TestInit_NilDependencies(t *testing.T) {
	var s login.Service
	assert.ErrorIs(t, s.Init(nil, nil, nil), handler.ErrNilDependency)
}
