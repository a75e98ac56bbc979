// Package middleware provides [transport.Middleware] decorators: exchange
// logging and client side rate limiting.
package middleware
