package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrInvalidAPIBaseURL error if config api.baseurl is not an absolute http(s) url.
	ErrInvalidAPIBaseURL = errors.New("config api.baseurl must be an absolute http or https url")

	// ErrEmptyCookieName error if config cookie.name is empty.
	ErrEmptyCookieName = errors.New("config cookie.name can not be empty")
)
