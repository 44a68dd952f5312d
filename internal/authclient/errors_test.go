package authclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage(t *testing.T) {
	const fallback = "Login failed"

	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail string", `{"detail":"Invalid credentials"}`, "Invalid credentials"},
		{"detail list uses first msg", `{"detail":[{"msg":"first"},{"msg":"second"}]}`, "first"},
		{"detail list without msg", `{"detail":[{"type":"missing"}]}`, fallback},
		{"detail empty list", `{"detail":[]}`, fallback},
		{"detail list of strings", `{"detail":["oops"]}`, fallback},
		{"detail number", `{"detail":42}`, fallback},
		{"detail null", `{"detail":null}`, fallback},
		{"detail empty string", `{"detail":""}`, fallback},
		{"no detail", `{"message":"nope"}`, fallback},
		{"empty body", ``, fallback},
		{"not json", `Internal Server Error`, fallback},
		{"json array body", `[1,2]`, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage([]byte(tt.body), fallback))
		})
	}
}

func TestError(t *testing.T) {
	err := newError(OpRegister, 400, "Email already registered", ErrRegistrationFailed)

	assert.Equal(t, "Email already registered", err.Error())
	assert.True(t, errors.Is(err, ErrRegistrationFailed))
	assert.False(t, errors.Is(err, ErrLoginFailed))
}
