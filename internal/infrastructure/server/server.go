package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/godisk/internal/api/http"
	"github.com/GriffinCanCode/godisk/internal/api/middleware"
	"github.com/GriffinCanCode/godisk/internal/api/ws"
	"github.com/GriffinCanCode/godisk/internal/domain/explorer"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/config"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/godisk/internal/remote"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	service  *explorer.Service
	client   *remote.Client
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	registry *prometheus.Registry
	tracer   *tracing.Tracer
}

// NewServer creates a new server instance with a logger built from cfg
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return NewServerWithLogger(cfg, logger), nil
}

// NewServerWithLogger creates a new server instance logging to logger
func NewServerWithLogger(cfg *config.Config, logger *logging.Logger) *Server {
	logger.Info("Initializing godisk server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("backend_url", cfg.Backend.URL),
	)

	// Metrics live in a private registry so several servers can coexist
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	tracer := tracing.New("godisk", logger)

	client := remote.NewClient(remote.Config{
		BaseURL:         cfg.Backend.URL,
		Timeout:         cfg.Backend.Timeout.Std(),
		Retries:         cfg.Backend.Retries,
		RPS:             cfg.Backend.RPS,
		BreakerFailures: cfg.Backend.BreakerFailures,
	}).WithLogger(logger).WithMetrics(metrics).WithTracer(tracer)

	runner := remote.NewRunner(client, cfg.Console.MaxLines)
	service := explorer.NewService(runner).WithLogger(logger).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(middleware.AccessLog(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limits))
	}

	handlers := apihttp.NewHandlers(service, client, cfg.Console).
		WithLogger(logger).
		WithMetrics(metrics)
	handlers.Register(router)

	wsHandler := ws.NewHandler(service).WithLogger(logger).WithMetrics(metrics)
	router.GET("/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	s := &Server{
		router:   router,
		service:  service,
		client:   client,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		registry: registry,
		tracer:   tracer,
	}
	s.http = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully")
	return s
}

// Handler returns the root handler. When gzip is enabled every response
// except WebSocket upgrades is compressed.
func (s *Server) Handler() http.Handler {
	if !s.config.Server.Gzip {
		return s.router
	}
	gz := gzhttp.GzipHandler(s.router)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			s.router.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Service returns the explorer service backing the API
func (s *Server) Service() *explorer.Service {
	return s.service
}

// Metrics returns the server metrics
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run starts the HTTP server and blocks until it is shut down
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	return s.serve(s.http.ListenAndServe)
}

// Serve accepts connections on l until the server is shut down
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("Starting HTTP server", zap.String("addr", l.Addr().String()))
	return s.serve(func() error { return s.http.Serve(l) })
}

func (s *Server) serve(fn func() error) error {
	if err := fn(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()
	return nil
}
