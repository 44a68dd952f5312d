package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is used when no API base URL is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultCookieName is the name of the token cookie.
	DefaultCookieName = "token"

	// DefaultMaxAge is the token cookie lifetime in seconds.
	DefaultMaxAge = 86400

	// DefaultSameSite is the SameSite policy of the token cookie.
	DefaultSameSite = "Strict"

	// DefaultTimeout bounds a single API round trip.
	DefaultTimeout = 30 * time.Second

	// RegisterPath is the API endpoint creating a user.
	RegisterPath = "/auth/register"

	// LoginPath is the API endpoint issuing access tokens.
	LoginPath = "/auth/login"

	// CurrentUserPath is the API endpoint returning the token's user.
	CurrentUserPath = "/users/me"

	cookiePath = "/"
)

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	CookieName string
	MaxAge     int
	SameSite   string
	Insecure   bool         // omit the Secure cookie attribute (plain http dev setups)
	HTTPClient *http.Client // optional, replaces the default client
}

// UserCreate holds the registration fields.
type UserCreate struct {
	Email    string `json:"email"               validate:"required,email"`
	Password string `json:"password"            validate:"required"`
	FullName string `json:"full_name,omitempty"`
}

// User is the user record returned by the API.
type User struct {
	ID         any    `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name,omitempty"`
	IsActive   bool   `json:"is_active"`
	IsVerified bool   `json:"is_verified"`

	// Raw is the complete record as sent by the API.
	Raw json.RawMessage `json:"-"`
}

// Token is a successful login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Client talks to the external auth API.
type Client struct {
	cfg      Config
	baseURL  string
	http     *http.Client
	store    TokenStore
	validate *validator.Validate
}

// New creates a client keeping its token in store.
func New(cfg Config, store TokenStore) *Client {
	if store == nil {
		panic("authclient: token store is nil")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}

	if cfg.MaxAge == 0 {
		cfg.MaxAge = DefaultMaxAge
	}

	if cfg.SameSite == "" {
		cfg.SameSite = DefaultSameSite
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		cfg:      cfg,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     httpClient,
		store:    store,
		validate: newValidator(),
	}
}

// With returns a copy of the client using store. The HTTP client is shared.
func (c *Client) With(store TokenStore) *Client {
	if store == nil {
		panic("authclient: token store is nil")
	}

	clone := *c
	clone.store = store

	return &clone
}

// CookieName returns the name of the token cookie.
func (c *Client) CookieName() string {
	return c.cfg.CookieName
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, data UserCreate) (*User, error) {
	if err := c.validate.Struct(data); err != nil {
		return nil, newError(OpRegister, 0, validationMessage(err), ErrRegistrationFailed)
	}

	body, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "encode registration")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(RegisterPath), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create register request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if !isOK(status) {
		log.Debug().Int("status", status).Str("op", OpRegister).Msg("auth api rejected request")
		return nil, newError(OpRegister, status, ExtractMessage(raw, MsgRegistrationFailed), ErrRegistrationFailed)
	}

	return decodeUser(raw)
}

// Login exchanges email and password for an access token and stores it.
// The token cookie is written only after the API answered successfully.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(LoginPath), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "create login request")
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	status, raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if !isOK(status) {
		log.Debug().Int("status", status).Str("op", OpLogin).Msg("auth api rejected request")
		return nil, newError(OpLogin, status, ExtractMessage(raw, MsgLoginFailed), ErrLoginFailed)
	}

	// the body is JSON whatever content type the API declares
	var tok Token
	if err := json.Unmarshal(raw, &tok); err != nil || tok.AccessToken == "" {
		log.Debug().Int("status", status).Str("op", OpLogin).Msg("auth api sent no access token")
		return nil, newError(OpLogin, status, MsgLoginFailed, ErrLoginFailed)
	}

	c.store.Set(c.cfg.CookieName, tok.AccessToken, c.cookieAttributes())

	return &tok, nil
}

// Logout forgets the stored token. It never fails.
func (c *Client) Logout() {
	c.store.Clear(c.cfg.CookieName)
}

// GetCurrentUser returns the user the stored token belongs to.
// A token rejected with 401 is removed from the store.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	token, ok := c.Token()
	if !ok {
		return nil, newError(OpCurrentUser, 0, MsgFetchFailed, ErrFetchFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(CurrentUserPath), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create current user request")
	}

	(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	status, raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		log.Debug().Str("op", OpCurrentUser).Msg("token rejected by auth api, clearing it")
		c.store.Clear(c.cfg.CookieName)
	}

	if !isOK(status) {
		return nil, newError(OpCurrentUser, status, MsgFetchFailed, ErrFetchFailed)
	}

	return decodeUser(raw)
}

// Token returns the stored token.
func (c *Client) Token() (string, bool) {
	token, ok := c.store.Get(c.cfg.CookieName)
	if !ok || token == "" {
		return "", false
	}

	return token, true
}

func (c *Client) cookieAttributes() CookieAttributes {
	return CookieAttributes{
		Path:     cookiePath,
		MaxAge:   c.cfg.MaxAge,
		Secure:   !c.cfg.Insecure,
		SameSite: c.cfg.SameSite,
	}
}

func (c *Client) url(endpoint string) string {
	return c.baseURL + endpoint
}

// do sends the request and returns status and body.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err //nolint:wrapcheck // transport errors are passed through
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "read response body")
	}

	return resp.StatusCode, raw, nil
}

func isOK(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func decodeUser(raw []byte) (*User, error) {
	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, errors.Wrap(err, "decode user")
	}

	user.Raw = raw

	return &user, nil
}

func logWriteError(path string, err error) {
	log.Error().Err(err).Str("path", path).Msg("can't persist token cookie")
}
