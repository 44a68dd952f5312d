package fiber_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeguard/routeguard/internal/logger"
	adapter "github.com/routeguard/routeguard/internal/logger/adapter/fiber"
)

// accessEntry implements loggers default json format.
type accessEntry struct {
	IP        string `json:"IP"`
	Status    int    `json:"status"`
	URI       string `json:"URI"`
	Method    string `json:"method"`
	Host      string `json:"host"`
	RequestID string `json:"request_id"`
	GuardRule string `json:"guard_rule"`
	Location  string `json:"location"`
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		targetPath string
		want       accessEntry
	}{
		{
			name:       "get /",
			targetPath: "/",
			want:       accessEntry{Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "multiple slashes are logged as sent",
			targetPath: "//test",
			want:       accessEntry{Status: 404, URI: "//test", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "query string",
			targetPath: "/?test=123",
			want:       accessEntry{Status: 200, URI: "/?test=123", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "multi slash and params",
			targetPath: "/no_path//?test=123",
			want:       accessEntry{Status: 404, URI: "/no_path//?test=123", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "redirect carries location and guard rule",
			targetPath: "/dashboard",
			want: accessEntry{
				Status:    fiber.StatusFound,
				URI:       "/dashboard",
				Method:    fiber.MethodGet,
				Host:      "example.com",
				GuardRule: "protected_no_token",
				Location:  "/auth/login",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := serve(t, tt.targetPath, logger.Log{})

			var got accessEntry
			require.NoError(t, json.Unmarshal(out, &got), string(out))

			tt.want.IP = "0.0.0.0"
			tt.want.RequestID = "req-1"
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_CheckAliveSkipped(t *testing.T) {
	out := serve(t, "/checkalive", logger.Log{DisableCheckAlive: true})
	assert.Empty(t, out)

	out = serve(t, "/checkalive", logger.Log{DisableCheckAlive: false})
	assert.NotEmpty(t, out)
}

func TestNew_NoWriters(t *testing.T) {
	app := fiber.New()
	app.Use(adapter.New(adapter.Config{}))
	app.Get("/", func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Performance"))
}

func serve(t *testing.T, targetPath string, cfg logger.Log) []byte {
	t.Helper()

	var buf bytes.Buffer

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(func(ctx *fiber.Ctx) error {
		ctx.Locals(adapter.LocalRequestID, "req-1")

		return ctx.Next()
	})

	app.Use(adapter.New(adapter.Config{Config: cfg, Output: &buf}))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})

	app.Get("/checkalive", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})

	app.Get("/dashboard", func(ctx *fiber.Ctx) error {
		ctx.Locals(adapter.LocalGuardRule, "protected_no_token")

		return ctx.Redirect("/auth/login", fiber.StatusFound)
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), -1)
	require.NoError(t, err)

	return bytes.TrimSpace(buf.Bytes())
}
