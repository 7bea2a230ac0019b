package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"fftcli/internal/config"
	"fftcli/internal/files"
	"fftcli/internal/infrastructure"
	customMiddleware "fftcli/internal/middleware"
	"fftcli/internal/operations"
	"fftcli/internal/suppression"
	handlers "fftcli/internal/transport/http"
	ws "fftcli/internal/websocket"
	"fftcli/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Hub           *ws.Hub
	Manager       *operations.Manager
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("service", infrastructure.ServiceName),
		slog.String("version", contracts.Version))

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	var metrics *infrastructure.BusinessMetrics
	if providers.Meter != nil {
		metrics, err = infrastructure.CreateBusinessMetrics(providers.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics: %w", err)
		}
	}

	hub := ws.NewHub(logger)

	engine, err := suppression.NewEngine(suppression.Params{
		Threshold:    cfg.Suppression.Threshold,
		CascadeDepth: cfg.Suppression.CascadeDepth,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create suppression engine: %w", err)
	}

	manager := operations.NewManager(
		operations.NewPipeline(engine, paths),
		files.NewDiscovery(paths.ExtractsDir),
		paths,
		hub,
	)

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Hub:           hub,
		Manager:       manager,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
	}
	app.setupRouter()
	app.setupServer()
	return app, nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Keep the outer chain minimal so the WebSocket upgrade is not
	// wrapped by response writers it cannot hijack.
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(a.Hub, w, req)
	})

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.Compress(5))
		r.Use(customMiddleware.NewRateLimiter(10, 20, a.Logger).Handler)
		r.Use(customMiddleware.Timeout(a.Config.Server.WriteTimeout, a.Logger))

		runsHandler := handlers.NewRunsHandler(a.Manager, a.Logger, config.DefaultRunTimeout)
		if a.Metrics != nil {
			runsHandler.SetMetrics(a.Metrics)
		}
		r.Mount("/api/runs", runsHandler.Routes())

		r.Method(http.MethodGet, "/healthz",
			handlers.NewHealthHandler(a.Paths, a.Hub, contracts.Version))
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

func (a *Application) setupServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		// Write timeout is left open for the WebSocket stream; API
		// requests are bounded by the timeout middleware instead.
		IdleTimeout: a.Config.Server.IdleTimeout,
	}
}

// Run starts the hub and HTTP server and blocks until shutdown.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Hub.Start()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("HTTP server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops the server, hub and telemetry gracefully.
func (a *Application) Shutdown() error {
	a.Logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	err := a.Server.Shutdown(ctx)
	a.Hub.Stop()

	if a.OTelProviders != nil {
		if oerr := a.OTelProviders.Shutdown(ctx); oerr != nil && err == nil {
			err = oerr
		}
	}
	infrastructure.CloseLogFile()
	return err
}
