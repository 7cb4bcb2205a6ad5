package handlers

import (
	"net/http"
	"runtime"
	"time"

	"showrunner/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStopped  = "stopped"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Ready        bool   `json:"ready"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
	State        string `json:"state"`
	PlaylistSize int    `json:"playlistSize"`
	Played       int    `json:"played"`
	LastReload   string `json:"lastReload,omitempty"`
	Error        string `json:"error,omitempty"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	st := h.status.Status()
	ready := h.status.Ready()

	response := HealthResponse{
		Ready:        ready,
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		State:        st.State,
		PlaylistSize: st.PlaylistSize,
		Played:       st.Played,
		Error:        st.Error,
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	switch {
	case st.Error != "":
		response.Status = statusDegraded
	case !ready:
		response.Status = statusStopped
	default:
		response.Status = statusHealthy
	}

	if !st.LastReload.IsZero() {
		response.LastReload = st.LastReload.Format(time.RFC3339)
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}
	respond(w, code, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	// For HEAD requests, only send headers (no body)
	if r.Method == http.MethodHead {
		respond(w, http.StatusOK, nil)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ReadinessCheck returns 200 while the sequencer can still play
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	if h.status.Ready() {
		respond(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}
	respond(w, http.StatusServiceUnavailable, map[string]string{"status": "halted"})
}

// VersionResponse is the build information plus how long playback has run.
type VersionResponse struct {
	startup.BuildInfo
	Folder string `json:"folder"`
	Uptime string `json:"uptime"`
}

// GetVersion returns the build information of the running binary
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, VersionResponse{
		BuildInfo: startup.GetBuildInfo(),
		Folder:    h.status.Playlist().Folder(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
