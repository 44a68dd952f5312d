package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	m := Default()

	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/dashboard", true},
		{"/auth/login", true},
		{"/api", false},
		{"/api/users", false},
		{"/apiary", true},
		{"/static/style.css", false},
		{"/favicon.ico", false},
		{"/metrics", false},
		{"/checkalive", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.path))
		})
	}
}

func TestNew_Include(t *testing.T) {
	m, err := New([]string{`^/dashboard`, `^/auth/`}, []string{`^/auth/callback$`})
	require.NoError(t, err)

	assert.True(t, m.Match("/dashboard/x"))
	assert.True(t, m.Match("/auth/login"))
	assert.False(t, m.Match("/auth/callback"))
	assert.False(t, m.Match("/"))
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(nil, []string{`^/(`})
	assert.Error(t, err)
}
