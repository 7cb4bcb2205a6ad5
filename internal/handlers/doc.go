// Package handlers provides the read-only HTTP endpoints of the status server.
//
// It includes handlers for:
//   - Health, liveness and readiness probes
//   - Version and build information
//   - Sequencer status and the current playlist
//   - Prometheus metrics
//
// There is no endpoint that changes playback; every route is GET only.
package handlers
