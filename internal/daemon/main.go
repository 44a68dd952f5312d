// Package daemon wires configuration, logging, the auth client and the web service.
package daemon

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/logger"
	"github.com/routeguard/routeguard/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM and shuts down gracefully.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	log.Info().
		Str("addr", addr).
		Str("api", d.cfg.API.BaseURL).
		Bool("dev", d.cfg.DevMode).
		Msg("starting web service")

	go func() {
		_ = d.webService.Start(addr)
	}()

	d.webService.WaitShutdown()

	return nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "init logger")
	}

	// every request binds the client to its own cookie, the memory store is never read
	client := authclient.New(cfg.ClientConfig(), authclient.NewMemoryStore())

	webService, err := web.New(cfg, client)
	if err != nil {
		return nil, errors.Wrap(err, "init web service")
	}

	return &Daemon{
		cfg:        cfg,
		webService: webService,
	}, nil
}
