// Package httpserver wraps net/http's server with graceful shutdown,
// env-driven configuration, and a health check handler for liveness and
// readiness probes.
package httpserver
