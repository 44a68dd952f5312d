// Package matcher decides which requests are handed to the route guard at all.
package matcher

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// DefaultExclude keeps API routes, static assets and service endpoints away from the guard.
var DefaultExclude = []string{ //nolint:gochecknoglobals
	`^/api(/|$)`,
	`^/static(/|$)`,
	`^/favicon\.ico$`,
	`^/metrics$`,
	`^/checkalive$`,
}

// Matcher is an allow/deny list of path patterns.
// A path matches if it matches no exclude pattern and, when include patterns
// are present, at least one include pattern.
type Matcher struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// New compiles the include and exclude patterns.
func New(include, exclude []string) (*Matcher, error) {
	var (
		m   Matcher
		err error
	)

	if m.include, err = compile(include); err != nil {
		return nil, err
	}

	if m.exclude, err = compile(exclude); err != nil {
		return nil, err
	}

	return &m, nil
}

// Default returns a matcher excluding DefaultExclude.
func Default() *Matcher {
	m, err := New(nil, DefaultExclude)
	if err != nil {
		panic(err)
	}

	return m
}

// Match reports whether the path is subject to the guard.
func (m *Matcher) Match(path string) bool {
	for _, re := range m.exclude {
		if re.MatchString(path) {
			return false
		}
	}

	if len(m.include) == 0 {
		return true
	}

	for _, re := range m.include {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// Skip is a fiber Next func, it returns true for requests the guard must not see.
func (m *Matcher) Skip(c *fiber.Ctx) bool {
	return !m.Match(c.Path())
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid path pattern %q", p)
		}

		out = append(out, re)
	}

	return out, nil
}
