// Package handlertest holds the fakes shared by the handler tests.
package handlertest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/guard"
)

// Token is the access token the fake API issues.
const Token = "tok-123"

// NoOpViews is a minimal Fiber Views engine used for tests.
// It writes the "error" field of the fiber.Map (if any), otherwise the template name.
type NoOpViews struct{}

// Load implements fiber.Views.
func (NoOpViews) Load() error { return nil }

// Render implements fiber.Views.
func (NoOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			_, _ = io.WriteString(w, v.(string))
			return nil
		}
	}

	_, _ = io.WriteString(w, name)

	return nil
}

// NewApp returns a fiber app rendering with NoOpViews.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{Views: NoOpViews{}})
}

// NewConfig returns a config with the default routes.
func NewConfig() *config.Config {
	p := guard.DefaultPolicy()

	return &config.Config{
		Title: "test",
		Webserver: config.Webserver{
			URL:  "http://localhost",
			Port: 3000,
		},
		Cookie: config.Cookie{Name: "token", MaxAge: 86400, SameSite: "Strict"},
		Routes: config.Routes{
			Protected: p.Protected,
			Home:      p.Home,
			Login:     p.Login,
			Dashboard: p.Dashboard,
			Verify:    p.Verify,
			AuthPages: p.AuthPages,
		},
	}
}

// FakeAPI starts an auth API knowing one user, alice@example.com / secret.
// It returns a client talking to it.
func FakeAPI(t *testing.T, cfg *config.Config) *authclient.Client {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		if body["email"] == "alice@example.com" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Email already registered"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"id": 2, "email": body["email"], "is_active": true})
	})

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()

		if r.PostForm.Get("username") != "alice@example.com" || r.PostForm.Get("password") != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Invalid credentials"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"access_token": Token, "token_type": "bearer"})
	})

	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"id":          1,
			"email":       "alice@example.com",
			"full_name":   "Alice",
			"is_active":   true,
			"is_verified": true,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg.API.BaseURL = srv.URL

	return authclient.New(cfg.ClientConfig(), authclient.NewMemoryStore())
}

// Do performs a request against app.
func Do(t *testing.T, app *fiber.App, method, target, cookie string, form url.Values) *http.Response {
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

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// Body reads the response body.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	return string(b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
