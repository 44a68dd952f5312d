// Package config handles input from etc/main.toml, the environment and .env files.
package config

import (
	"bytes"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/guard"
	"github.com/routeguard/routeguard/internal/web/matcher"
)

const (
	// EnvPrefix prefixes every environment override, e.g. ROUTEGUARD_WEBSERVER_PORT.
	EnvPrefix = "ROUTEGUARD"

	// EnvConfigJSON holds a JSON document merged over the file config.
	EnvConfigJSON = "ROUTEGUARD_CONFIG_JSON"

	// EnvAPIURL is the plain environment variable of the auth API base URL.
	EnvAPIURL = "API_URL"

	fileName = "main.toml"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(filepath.Join(path, fileName))
	v.SetConfigType("toml")

	// ROUTEGUARD_API_BASEURL, ROUTEGUARD_WEBSERVER_PORT, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.BindEnv("api.baseurl", EnvPrefix+"_API_BASEURL", EnvAPIURL); err != nil {
		return Config{}, errors.Wrap(err, "failed to bind api base url env")
	}

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

// LoadDotEnv loads environment files without overriding variables already set.
// Missing files are skipped. Without arguments ./.env is loaded.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "failed to load env file %s", f)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	policy := guard.DefaultPolicy()

	v.SetDefault("devmode", false)
	v.SetDefault("title", "routeguard")

	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.appname", "routeguard")
	v.SetDefault("log.servicename", "web")
	v.SetDefault("log.reportcaller", false)
	v.SetDefault("log.enableaccesslogtoconsole", false)
	v.SetDefault("log.disablecheckalive", true)
	v.SetDefault("log.console.enabled", true)
	v.SetDefault("log.console.useconsolewriter", false)
	v.SetDefault("log.file.enabled", false)

	v.SetDefault("webserver.port", 3000) //nolint:mnd
	v.SetDefault("webserver.url", "http://localhost:3000")
	v.SetDefault("webserver.shutdowntime", 5) //nolint:mnd
	v.SetDefault("webserver.disablerecover", false)

	v.SetDefault("api.baseurl", authclient.DefaultBaseURL)
	v.SetDefault("api.timeout", authclient.DefaultTimeout)

	v.SetDefault("cookie.name", authclient.DefaultCookieName)
	v.SetDefault("cookie.maxage", authclient.DefaultMaxAge)
	v.SetDefault("cookie.samesite", authclient.DefaultSameSite)

	v.SetDefault("routes.protected", policy.Protected)
	v.SetDefault("routes.home", policy.Home)
	v.SetDefault("routes.login", policy.Login)
	v.SetDefault("routes.dashboard", policy.Dashboard)
	v.SetDefault("routes.verify", policy.Verify)
	v.SetDefault("routes.authpages", policy.AuthPages)
	v.SetDefault("routes.include", []string{})
	v.SetDefault("routes.exclude", matcher.DefaultExclude)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config override")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// GuardPolicy returns the route guard policy of the routes section.
func (c *Config) GuardPolicy() guard.Policy {
	return guard.Policy{
		Protected: c.Routes.Protected,
		Home:      c.Routes.Home,
		Login:     c.Routes.Login,
		Dashboard: c.Routes.Dashboard,
		Verify:    c.Routes.Verify,
		AuthPages: c.Routes.AuthPages,
	}
}

// ClientConfig returns the auth client settings.
func (c *Config) ClientConfig() authclient.Config {
	return authclient.Config{
		BaseURL:    c.API.BaseURL,
		Timeout:    c.API.Timeout,
		CookieName: c.Cookie.Name,
		MaxAge:     c.Cookie.MaxAge,
		SameSite:   c.Cookie.SameSite,
		Insecure:   c.DevMode,
	}
}

// validate minimal config settings.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	apiURL, err := url.Parse(c.API.BaseURL)
	if err != nil || apiURL.Host == "" || (apiURL.Scheme != "http" && apiURL.Scheme != "https") {
		return errors.Wrap(ErrInvalidAPIBaseURL, invalidErrMessage)
	}

	if c.Cookie.Name == "" {
		return errors.Wrap(ErrEmptyCookieName, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	return nil
}
