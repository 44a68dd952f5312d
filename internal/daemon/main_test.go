package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/logger"
)

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	cfg := &config.Config{
		Title:     "test",
		Log:       logger.Log{LogLevel: "bogus", AppName: "a", ServiceName: "s"},
		Webserver: config.Webserver{Port: 3000, URL: "http://localhost:3000"},
	}

	_, err = New(cfg)
	assert.Error(t, err, "invalid log level")

	t.Setenv(config.EnvAPIURL, "")

	read, err := config.ReadConfig("../../etc/")
	require.NoError(t, err)

	read.Log.Console.Enabled = false

	d, err := New(&read)
	require.NoError(t, err)
	assert.NotNil(t, d.webService)
}
