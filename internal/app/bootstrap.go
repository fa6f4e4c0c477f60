package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobswipe/internal/config"
	"jobswipe/internal/delivery/http/handler"
	"jobswipe/internal/delivery/http/middleware"
	"jobswipe/internal/delivery/http/routes"
	v1 "jobswipe/internal/delivery/http/routes/v1"
	"jobswipe/internal/domain/validation"
	"jobswipe/internal/maintenance"
	"jobswipe/internal/matchfeed"
	"jobswipe/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Fiber *fiber.App
	WS    *http.Server

	cfg       config.Config
	logger    *zap.Logger
	hub       *ws.Hub
	listener  *matchfeed.Listener
	poller    *matchfeed.Poller
	relay     *matchfeed.Relay
	scheduler *maintenance.Scheduler
}

func New(c *Container) (*App, error) {
	cfg := c.Config
	logger := c.Logger

	f := fiber.New(fiber.Config{
		AppName:         cfg.App.AppName,
		StructValidator: validation.StructValidator{},
	})
	registerGlobalMiddleware(f, logger)

	authMw := middleware.NewAuthMiddleware(c.JWT)
	swipeLimiter := middleware.NewRateLimitMiddleware(cfg.Matching.SwipeRatePerSec, cfg.Matching.SwipeBurst)

	health := handler.NewHealthHandler(c.DB, c.Cache)

	routes.NewRegistry(health, v1.Handlers{
		Auth:      handler.NewAuthHandler(c.Auth),
		Users:     handler.NewUserHandler(c.Profile),
		Vacancies: handler.NewVacancyHandler(c.Vacancies),
		Targets:   handler.NewTargetHandler(c.Targets),
		Swipes:    handler.NewSwipeHandler(c.Swipes, swipeLimiter.Middleware()),
		Matches:   handler.NewMatchHandler(c.Match),
		Reference: handler.NewReferenceHandler(c.Reference),
	}, authMw.Middleware()).Register(f)

	hub := ws.NewHub(logger)
	wsAddr, err := ListenAddr(cfg.App.WSPort)
	if err != nil {
		return nil, fmt.Errorf("invalid WS port: %w", err)
	}
	wsServer := &http.Server{
		Addr:              wsAddr,
		Handler:           ws.NewHandler(hub, c.JWT, logger).Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	dispatcher := matchfeed.NewDispatcher(c.Cache, c.Cache, hub, c.Match, logger)

	a := &App{
		Fiber:    f,
		WS:       wsServer,
		cfg:      cfg,
		logger:   logger,
		hub:      hub,
		listener: matchfeed.NewListener(c.DB, dispatcher, logger),
		poller:   matchfeed.NewPoller(c.Matches, dispatcher, cfg.Matching.PollInterval, logger),
		relay:    matchfeed.NewRelay(c.Cache, hub, logger),
	}

	if spec := strings.TrimSpace(cfg.Maintenance.CleanupSchedule); spec != "" {
		s, err := maintenance.NewScheduler(c.Cleaner, spec, logger)
		if err != nil {
			return nil, err
		}
		a.scheduler = s
	}

	return a, nil
}

// Bootstrap connects the stores and builds the app. The returned cleanup
// releases the connections.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	a, err := New(c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return a, c.Close, nil
}

// Run serves HTTP and WebSocket traffic and runs the match feed until ctx
// ends or one part fails, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	httpAddr, err := ListenAddr(a.cfg.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.hub.Run(gctx)
		return nil
	})
	g.Go(func() error { return a.listener.Run(gctx) })
	g.Go(func() error { return a.poller.Run(gctx) })
	g.Go(func() error { return a.relay.Run(gctx) })
	if a.scheduler != nil {
		g.Go(func() error { return a.scheduler.Run(gctx) })
	}

	g.Go(func() error {
		a.logger.Info("http listening", zap.String("addr", httpAddr))
		return a.Fiber.Listen(httpAddr, fiber.ListenConfig{DisableStartupMessage: true})
	})
	g.Go(func() error {
		a.logger.Info("ws listening", zap.String("addr", a.WS.Addr))
		if err := a.WS.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(
			a.Fiber.ShutdownWithContext(sctx),
			a.WS.Shutdown(sctx),
		)
	})

	return g.Wait()
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
