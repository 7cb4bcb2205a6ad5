// Package middleware provides HTTP middleware for the showrunner status server.
//
// It includes:
//   - Access logging in W3C Extended Log Format
//   - Prometheus request metrics keyed by route template
//   - gzip compression for larger JSON responses
package middleware
