package authclient

import (
	"encoding/json"
	"errors"
)

var (
	// ErrRegistrationFailed is the kind of every failed Register call.
	ErrRegistrationFailed = errors.New("registration failed")

	// ErrLoginFailed is the kind of every failed Login call.
	ErrLoginFailed = errors.New("login failed")

	// ErrFetchFailed is the kind of every failed GetCurrentUser call.
	ErrFetchFailed = errors.New("failed to fetch user")
)

// Fallback messages used when the API gives no usable detail.
const (
	MsgRegistrationFailed = "Registration failed"
	MsgLoginFailed        = "Login failed"
	MsgFetchFailed        = "Failed to fetch user"
)

// Operation names.
const (
	OpRegister    = "register"
	OpLogin       = "login"
	OpCurrentUser = "current_user"
)

// Error is a failed auth API operation.
type Error struct {
	Op         string
	StatusCode int // 0 if the request was never sent
	Message    string
	Kind       error
}

// Error returns the human-readable message only.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(op string, status int, message string, kind error) *Error {
	return &Error{
		Op:         op,
		StatusCode: status,
		Message:    message,
		Kind:       kind,
	}
}

// errorBody is the error envelope of the auth API.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// validationItem is one entry of a "detail" list.
type validationItem struct {
	Msg *string `json:"msg"`
}

// ExtractMessage returns the message of an error response body.
// A string "detail" is used as is, for a list the first item's "msg" is used,
// anything else yields fallback.
func ExtractMessage(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return fallback
	}

	if len(eb.Detail) == 0 || string(eb.Detail) == "null" {
		return fallback
	}

	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err == nil {
		if detail == "" {
			return fallback
		}

		return detail
	}

	var items []validationItem
	if err := json.Unmarshal(eb.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != nil {
		return *items[0].Msg
	}

	return fallback
}
