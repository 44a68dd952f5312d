// Package web serves the pages behind the route guard.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/routeguard/routeguard/internal/authclient"
	"github.com/routeguard/routeguard/internal/config"
	accesslog "github.com/routeguard/routeguard/internal/logger/adapter/fiber"
	"github.com/routeguard/routeguard/internal/web/handler"
	"github.com/routeguard/routeguard/internal/web/handler/dashboard"
	"github.com/routeguard/routeguard/internal/web/handler/home"
	"github.com/routeguard/routeguard/internal/web/handler/login"
	"github.com/routeguard/routeguard/internal/web/handler/logout"
	"github.com/routeguard/routeguard/internal/web/handler/register"
	"github.com/routeguard/routeguard/internal/web/handler/verify"
	"github.com/routeguard/routeguard/internal/web/matcher"
	"github.com/routeguard/routeguard/internal/web/middleware/guard"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and shuts the server down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown drains the service: checkalive fails for Webserver.ShutDownTime
// seconds so load balancers stop routing, then the http server stops.
func (s *Service) Shutdown() {
	s.alive.Store(false)

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates the web service with its middleware chain and pages.
func New(cfg *config.Config, client *authclient.Client) (*Service, error) {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if client == nil {
		panic("auth client cannot be nil")
	}

	routes, err := matcher.New(cfg.Routes.Include, cfg.Routes.Exclude)
	if err != nil {
		return nil, err
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          newTemplateEngine(cfg),
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: accesslog.LocalRequestID,
	}))

	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     false,
			},
		),
	)

	policy := cfg.GuardPolicy()

	app.Use(guard.New(guard.Config{
		Next:       routes.Skip,
		Policy:     &policy,
		CookieName: cfg.Cookie.Name,
	}))

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.Alive() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
		}

		return c.SendString("OK")
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	handlers := []handler.Service{
		&home.Handler,
		&login.Handler,
		&register.Handler,
		&verify.Handler,
		&dashboard.Handler,
		&logout.Handler,
	}

	for _, h := range handlers {
		if err := h.Init(app, cfg, client); err != nil {
			return nil, pkgerrors.Wrap(err, "init handler")
		}
	}

	return service, nil
}

func newTemplateEngine(cfg *config.Config) *html.Engine {
	engine := html.NewFileSystem(http.FS(subFS{content: embeddedTemplates, dir: "templates"}), ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		engine = html.New("./internal/web/templates", ".gohtml")
		engine.Reload(true)

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	return engine
}
