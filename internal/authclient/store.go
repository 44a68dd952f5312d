package authclient

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// CookieAttributes are the attributes a token cookie is written with.
type CookieAttributes struct {
	Path     string
	MaxAge   int       // seconds, 0 = not set
	Expires  time.Time // zero = not set
	Secure   bool
	SameSite string // "Strict", "Lax" or "None"
}

// TokenStore keeps named cookies. Implementations decide where they live.
type TokenStore interface {
	// Get returns the cookie value and whether it exists.
	Get(name string) (string, bool)
	// Set writes the cookie.
	Set(name, value string, attrs CookieAttributes)
	// Clear expires the cookie immediately.
	Clear(name string)
}

// TokenFromCookieHeader returns the value of the first cookie called name in a
// Cookie header ("a=1; token=abc").
func TokenFromCookieHeader(header, name string) (string, bool) {
	for _, part := range strings.Split(header, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || key != name {
			continue
		}

		return value, true
	}

	return "", false
}

// Cookie is a cookie kept by MemoryStore.
type Cookie struct {
	Name  string
	Value string
	CookieAttributes
}

// MemoryStore is an in-process TokenStore.
type MemoryStore struct {
	mu      sync.RWMutex
	cookies map[string]Cookie
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cookies: make(map[string]Cookie)}
}

// Get implements TokenStore.
func (s *MemoryStore) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cookies[name]

	return c.Value, ok
}

// Set implements TokenStore.
func (s *MemoryStore) Set(name, value string, attrs CookieAttributes) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cookies[name] = Cookie{Name: name, Value: value, CookieAttributes: attrs}
}

// Clear implements TokenStore.
func (s *MemoryStore) Clear(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cookies, name)
}

// Cookie returns the stored cookie including its attributes.
func (s *MemoryStore) Cookie(name string) (Cookie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cookies[name]

	return c, ok
}

// Header renders the stored cookies as a Cookie header, sorted by name.
func (s *MemoryStore) Header() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pairs := make([]string, 0, len(s.cookies))
	for name, c := range s.cookies {
		pairs = append(pairs, name+"="+c.Value)
	}

	sort.Strings(pairs)

	return strings.Join(pairs, "; ")
}

// FileStore keeps cookies as a single Cookie header line in a file.
// It is used by the command line client between invocations.
type FileStore struct {
	Path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Get implements TokenStore. A missing or unreadable file holds no cookies.
func (s *FileStore) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, err := s.read()
	if err != nil {
		return "", false
	}

	return TokenFromCookieHeader(header, name)
}

// Set implements TokenStore. Attributes are not persisted, the API decides
// whether a stored token is still valid.
func (s *FileStore) Set(name, value string, _ CookieAttributes) {
	s.update(name, func(pairs []string) []string {
		return append(pairs, name+"="+value)
	})
}

// Clear implements TokenStore.
func (s *FileStore) Clear(name string) {
	s.update(name, func(pairs []string) []string { return pairs })
}

// update drops all entries called name and lets fn append replacements.
func (s *FileStore) update(name string, fn func([]string) []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, _ := s.read() //nolint:errcheck // a missing file is an empty jar

	pairs := make([]string, 0)

	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if key, _, _ := strings.Cut(part, "="); key == name {
			continue
		}

		pairs = append(pairs, part)
	}

	if err := s.write(strings.Join(fn(pairs), "; ")); err != nil {
		logWriteError(s.Path, err)
	}
}

func (s *FileStore) read() (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", errors.Wrap(err, "read cookie file")
	}

	return strings.TrimSpace(string(b)), nil
}

func (s *FileStore) write(header string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil { //nolint:mnd
		return errors.Wrap(err, "create cookie directory")
	}

	if err := os.WriteFile(s.Path, []byte(header+"\n"), 0o600); err != nil { //nolint:mnd
		return errors.Wrap(err, "write cookie file")
	}

	return nil
}
