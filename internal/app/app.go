package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.opentelemetry.io/otel/trace"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/config"
	apierrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/infrastructure"
	customMiddleware "github.com/Yachtguy502/Analyze-Active-Listings/internal/middleware"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/services"
	handlers "github.com/Yachtguy502/Analyze-Active-Listings/internal/transport/http"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Services      *ServiceContainer
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.AnalysisMetrics

	errorHandler *apierrors.ErrorHandler
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Analysis *services.AnalysisService
}

// NewApplication wires telemetry, services and the HTTP router from cfg.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateAnalysisMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	analysis, err := NewAnalysisService(cfg, logger, metrics, providers)
	if err != nil {
		return nil, err
	}

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		Services:      &ServiceContainer{Analysis: analysis},
		OTelProviders: providers,
		Metrics:       metrics,
		errorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
	}
	a.setupRouter()
	a.createServer()

	return a, nil
}

// NewAnalysisService builds the analysis service from the analysis section
// of cfg. providers and metrics may be nil.
func NewAnalysisService(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.AnalysisMetrics, providers *infrastructure.OTelProviders) (*services.AnalysisService, error) {
	variant, err := domain.ParseVariant(cfg.Analysis.Variant)
	if err != nil {
		return nil, apierrors.NewConfigError("invalid analysis variant", err)
	}

	svcCfg := services.AnalysisServiceConfig{
		Variant:          variant,
		Workers:          cfg.Analysis.Workers,
		MinRowsPerWorker: cfg.Analysis.MinRowsPerWorker,
	}
	var tracer trace.Tracer
	if providers != nil {
		tracer = providers.Tracer
	}
	return services.NewAnalysisService(logger, svcCfg, metrics, tracer), nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// RequestID → RealIP → Logger → Recoverer → headers → CORS → rate limit → OTel → Timeout
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(apierrors.RecoveryMiddleware(a.errorHandler))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", customMiddleware.RequestIDHeader},
			ExposedHeaders: []string{customMiddleware.RequestIDHeader, "Content-Disposition", "Retry-After"},
			MaxAge:         300,
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
			a.errorHandler,
		).Handler)
	}

	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics).Handler)

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r)

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle(config.MetricsEndpoint, a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		health := handlers.NewHealthHandler(a.Logger)
		r.Get("/health", health.HealthCheck)
		r.Get("/version", health.Version)

		// analysis requests are bounded by the request timeout
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.RequestTimeout(a.Config.Server.RequestTimeout))

			analysis := handlers.NewAnalysisHandler(a.Services.Analysis, a.Logger, a.errorHandler, a.Config.Analysis.MaxUploadBytes)
			r.Mount("/v1/analyses", analysis.Routes())
		})
	})
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:              a.Config.Server.Addr(),
		Handler:           a.Router,
		ReadTimeout:       a.Config.Server.ReadTimeout,
		ReadHeaderTimeout: a.Config.Server.ReadTimeout,
		WriteTimeout:      a.Config.Server.WriteTimeout,
		IdleTimeout:       a.Config.Server.IdleTimeout,
		MaxHeaderBytes:    a.Config.Server.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(a.Logger.Handler(), slog.LevelWarn),
	}
}

// Run serves HTTP until ctx is cancelled or the server fails, then shuts
// down gracefully. The caller owns signal handling.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("address", ln.Addr().String()),
		slog.String("variant", a.Config.Analysis.Variant))

	serveErr := make(chan error, 1)
	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.Logger.InfoContext(ctx, "Received shutdown signal")
	case err := <-serveErr:
		if err != nil {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			a.shutdownTelemetry(context.Background())
			return fmt.Errorf("server error: %w", err)
		}
	}

	return a.Stop(context.WithoutCancel(ctx))
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	a.shutdownTelemetry(shutdownCtx)

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

func (a *Application) shutdownTelemetry(ctx context.Context) {
	if a.OTelProviders == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.OTelProviders.Shutdown(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}
}
