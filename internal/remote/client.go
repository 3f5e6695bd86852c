package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/godisk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/tracing"
)

var (
	ErrRemoteFailure = errors.New("remote command failed")
	ErrEmptyScript   = errors.New("script has no commands")
	ErrScriptTooLong = errors.New("script has too many commands")
)

const executePath = "/execute"

// Config configures the backend client
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	Retries         int
	RPS             float64
	BreakerFailures uint32
}

// DefaultConfig returns settings for a backend on localhost:3001
func DefaultConfig() Config {
	return Config{
		BaseURL:         "http://localhost:3001",
		Timeout:         30 * time.Second,
		Retries:         2,
		BreakerFailures: 5,
	}
}

type commandRequest struct {
	Command string `json:"command"`
}

type commandResponse struct {
	Output string `json:"output"`
}

// Client executes commands against the backend
type Client struct {
	resty   *resty.Client
	breaker *resilience.Breaker
	logger  *logging.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer

	mu      sync.RWMutex
	limiter *rate.Limiter
}

// NewClient creates a backend client with retries and a circuit breaker
func NewClient(cfg Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil
	// Only transport errors are retried; a 5xx from the backend is final
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return err != nil, nil
	}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "godisk/1.0").
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	restyClient.SetTransport(&retryablehttp.RoundTripper{Client: retryClient})

	c := &Client{
		resty:   restyClient,
		logger:  logging.NewNop(),
		limiter: newLimiter(cfg.RPS),
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	c.breaker = resilience.New("backend", resilience.Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: resilience.ConsecutiveFailuresAtLeast(failures),
		OnStateChange: func(name string, from, to resilience.State) {
			c.logger.Warn("Breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
			if c.metrics != nil {
				c.metrics.SetBreakerState(int(to))
			}
		},
	})

	return c
}

// WithLogger sets the client logger
func (c *Client) WithLogger(logger *logging.Logger) *Client {
	c.logger = logger
	return c
}

// WithMetrics adds metrics tracking to the client
func (c *Client) WithMetrics(metrics *monitoring.Metrics) *Client {
	c.metrics = metrics
	return c
}

// WithTracer records a span per command and forwards the trace context
// to the backend
func (c *Client) WithTracer(tracer *tracing.Tracer) *Client {
	c.tracer = tracer
	return c
}

// SetRateLimit configures rate limiting (requests per second, 0 = unlimited)
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limiter = newLimiter(rps)
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// Execute sends one command and returns the backend output
func (c *Client) Execute(ctx context.Context, command string) (out string, err error) {
	c.mu.RLock()
	limiter := c.limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	if c.tracer != nil {
		var span *tracing.Span
		span, ctx = c.tracer.StartSpan(ctx, "backend.execute")
		span.SetTag("command", command)
		defer func() {
			if err != nil {
				span.SetError(err)
			}
			span.Finish()
			c.tracer.Submit(span)
		}()
	}

	timer := monitoring.NewTimer(c.metrics)
	out, err = resilience.Do(c.breaker, func() (string, error) {
		return c.post(ctx, command)
	})
	if err != nil {
		timer.Stop("error")
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: backend unavailable: %w", ErrRemoteFailure, err)
		}
		return "", err
	}
	timer.Stop("success")
	return out, nil
}

func (c *Client) post(ctx context.Context, command string) (string, error) {
	headers := make(map[string]string, 2)
	tracing.InjectTraceContext(ctx, headers)

	var result commandResponse
	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(commandRequest{Command: command}).
		SetResult(&result).
		ForceContentType("application/json").
		Post(executePath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %w", ErrRemoteFailure, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: backend returned %s", ErrRemoteFailure, resp.Status())
	}
	return result.Output, nil
}
