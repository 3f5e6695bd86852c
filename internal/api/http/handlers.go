package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/godisk/internal/api/middleware"
	"github.com/GriffinCanCode/godisk/internal/domain/explorer"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/config"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/godisk/internal/remote"
)

const version = "1.0.0"

// BackendStatus reports the health of the backend connection
type BackendStatus interface {
	BreakerState() resilience.State
}

// Handlers contains all HTTP handlers
type Handlers struct {
	service *explorer.Service
	backend BackendStatus
	limits  config.ConsoleConfig
	logger  *logging.Logger
	metrics *monitoring.Metrics
	started time.Time
}

// NewHandlers creates a new handler set. backend may be nil.
func NewHandlers(service *explorer.Service, backend BackendStatus, limits config.ConsoleConfig) *Handlers {
	return &Handlers{
		service: service,
		backend: backend,
		limits:  limits,
		logger:  logging.NewNop(),
		started: time.Now(),
	}
}

// WithLogger sets the handler logger
func (h *Handlers) WithLogger(logger *logging.Logger) *Handlers {
	h.logger = logger
	return h
}

// WithMetrics exposes metric snapshots on /health
func (h *Handlers) WithMetrics(metrics *monitoring.Metrics) *Handlers {
	h.metrics = metrics
	return h
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	console := r.Group("/console")
	console.POST("/execute", h.Execute)
	console.POST("/upload", h.Upload)
	console.GET("/output", h.GetOutput)
	console.DELETE("/output", h.ClearOutput)

	ex := r.Group("/explorer")
	ex.GET("", h.GetExplorer)
	ex.DELETE("", h.ResetExplorer)
	ex.POST("/reconcile", h.Reconcile)
	ex.POST("/refresh", h.Refresh)
	ex.GET("/disks", h.ListDisks)
	ex.GET("/tree", h.GetTree)
	ex.GET("/tree/find", h.FindNodes)
}

// Root handles the liveness check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "godisk console",
		"version": version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	status := "healthy"
	body := gin.H{
		"explorer": h.service.Stats(),
		"uptime":   time.Since(h.started).Seconds(),
	}
	if h.backend != nil {
		state := h.backend.BreakerState()
		body["backend"] = state.String()
		if state == resilience.StateOpen {
			status = "degraded"
		}
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	body["status"] = status
	c.JSON(http.StatusOK, body)
}

// fail writes the JSON error for err and logs it
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}

	var cmdErr *remote.CommandError
	if errors.As(err, &cmdErr) {
		body["line"] = cmdErr.Line
		body["command"] = cmdErr.Command
	}

	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("Request failed",
			logging.RequestID(middleware.GetRequestID(c)),
			zap.Int("status", status),
			zap.Error(err))
	}
	c.JSON(status, body)
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, explorer.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, remote.ErrEmptyScript), errors.Is(err, remote.ErrScriptTooLong):
		return http.StatusBadRequest
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	case errors.Is(err, remote.ErrRemoteFailure):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
