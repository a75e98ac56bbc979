package jsonrpc

import (
	"github.com/frankli0324/go-jsonrpc/internal/metrics"
	"github.com/frankli0324/go-jsonrpc/internal/middleware"
	"github.com/frankli0324/go-jsonrpc/internal/transport"
	"github.com/frankli0324/go-jsonrpc/internal/transport/simplehttp"
)

type Transport = transport.Transport
type Middleware = transport.Middleware

// SimpleHTTPTransport is the immutable configuration of the minimal HTTP
// transport. build one with [NewBuilder].
type SimpleHTTPTransport = simplehttp.Transport
type Builder = simplehttp.Builder

// TransportError is what a [SimpleHTTPTransport] failure wraps; retrieve it
// with errors.As.
type TransportError = simplehttp.Error

// Metrics holds Prometheus collectors; its Middleware instruments a client.
type Metrics = metrics.Metrics

const (
	DefaultPort    = simplehttp.DefaultPort
	DefaultTimeout = simplehttp.DefaultTimeout
)

var (
	NewBuilder = simplehttp.NewBuilder

	LoggingMiddleware   = middleware.Logging
	RateLimitMiddleware = middleware.RateLimit

	NewMetrics = metrics.New
)
