package vektopay

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Option configures a Client during creation.
type Option func(*config)

// config holds internal configuration for client creation.
type config struct {
	bearerToken    string
	defaultHeaders map[string]string
	httpClient     *http.Client
	clock          clockz.Clock
	logger         *zap.Logger
	surface        Surface
	keyFunc        func() string
}

// WithBearerToken enables the dashboard-scoped operations (customer
// management) with the given token. Without it those calls fail with
// ErrBearerTokenRequired.
func WithBearerToken(token string) Option {
	return func(c *config) {
		c.bearerToken = token
	}
}

// WithDefaultHeaders merges the given headers into every request. They
// never override the content-type or authentication headers the client
// sets itself.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *config) {
		c.defaultHeaders = headers
	}
}

// WithHTTPClient replaces the underlying HTTP client. The default is a
// client with a 10 second timeout whose transport is instrumented with
// otelhttp.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// WithClock sets the clock implementation for time operations.
// Default is clockz.RealClock for production use.
// Use a fake clock for deterministic polling tests.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the structured logger. The default is zap.NewNop, so
// the client is silent unless a logger is supplied.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSurface sets the presentation surface used by OpenChallenge.
// Without one, OpenChallenge fails with ErrChallengeNotSupported.
func WithSurface(s Surface) Option {
	return func(c *config) {
		c.surface = s
	}
}

// WithKeyFunc replaces the idempotency key generator used when a legacy
// charge is submitted without a caller-supplied key. The default
// produces a UUID, falling back to a random hex string if UUID
// generation fails.
func WithKeyFunc(fn func() string) Option {
	return func(c *config) {
		c.keyFunc = fn
	}
}

// Client talks to the Vektopay gateway. It holds only immutable
// configuration; all methods are safe for concurrent use.
//
// Construct with New and keep a single instance per credential set:
//
//	client := vektopay.New(apiKey, baseURL,
//		vektopay.WithBearerToken(dashboardToken),
//		vektopay.WithLogger(logger),
//	)
type Client struct {
	apiKey         string
	baseURL        string
	bearerToken    string
	defaultHeaders map[string]string
	httpClient     *http.Client
	clock          clockz.Clock
	logger         *zap.Logger
	surface        Surface
	keyFunc        func() string

	metrics Metrics
}

// New creates a client for the gateway at baseURL authenticating with
// apiKey. A trailing slash on baseURL is stripped.
func New(apiKey, baseURL string, opts ...Option) *Client {
	cfg := config{
		clock:   clockz.RealClock,
		logger:  zap.NewNop(),
		keyFunc: randomKey,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		}
	}

	return &Client{
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		bearerToken:    cfg.bearerToken,
		defaultHeaders: cfg.defaultHeaders,
		httpClient:     cfg.httpClient,
		clock:          cfg.clock,
		logger:         cfg.logger,
		surface:        cfg.surface,
		keyFunc:        cfg.keyFunc,
	}
}

// randomKey generates an idempotency key. UUIDs come from a secure
// random source; if that source is unavailable the fallback is a
// best-effort random hex string.
func randomKey() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "fallback-key"
	}
	return hex.EncodeToString(bytes)
}
