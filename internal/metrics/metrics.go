package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrunner_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showrunner_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showrunner_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Sequencer metrics
var (
	SequencerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "showrunner_sequencer_state",
			Help: "Current sequencer state (1 for the active state, 0 otherwise)",
		},
		[]string{"state"},
	)

	SequencerTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrunner_sequencer_transitions_total",
			Help: "Total number of sequencer state transitions",
		},
		[]string{"from", "to"},
	)

	SequencerHaltsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrunner_sequencer_halts_total",
			Help: "Total number of sequencer halts by reason",
		},
		[]string{"reason"},
	)

	SequencerUptimeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showrunner_sequencer_uptime_seconds",
			Help: "Seconds since the sequencer was created",
		},
	)
)

// Presentation metrics
var (
	PresentationsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showrunner_presentations_started_total",
			Help: "Total number of slideshows started",
		},
	)

	PresentationsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showrunner_presentations_completed_total",
			Help: "Total number of slideshows that ran past their last slide",
		},
	)

	PresentationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showrunner_presentation_duration_seconds",
			Help:    "Time from slideshow start to completion",
			Buckets: []float64{10, 30, 60, 120, 300, 600, 900, 1800, 3600},
		},
	)

	PresentationsPlayed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showrunner_presentations_played",
			Help: "Presentations played to the end in the current run",
		},
	)
)

// Confirmation gate metrics
var (
	ConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrunner_confirmations_total",
			Help: "Total number of operator confirmations by result",
		},
		[]string{"result"}, // "accepted", "declined", "error"
	)

	ConfirmationWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showrunner_confirmation_wait_seconds",
			Help:    "Time spent waiting for the operator to answer",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 300, 900},
		},
	)
)

// Presentation engine metrics
var (
	EnginePollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showrunner_engine_poll_duration_seconds",
			Help:    "Duration of slideshow position queries",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	EnginePollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrunner_engine_polls_total",
			Help: "Total number of slideshow position queries",
		},
		[]string{"status"},
	)

	EngineErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrunner_engine_errors_total",
			Help: "Total number of presentation engine errors by operation",
		},
		[]string{"operation"},
	)
)

// Playlist metrics
var (
	PlaylistSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showrunner_playlist_size",
			Help: "Number of presentations in the current playlist",
		},
	)

	PlaylistReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrunner_playlist_reloads_total",
			Help: "Total number of playlist reloads",
		},
		[]string{"status"},
	)

	PlaylistReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showrunner_playlist_reload_duration_seconds",
			Help:    "Playlist reload duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	PlaylistLastReloadTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showrunner_playlist_last_reload_timestamp",
			Help: "Unix timestamp of the last successful playlist reload",
		},
	)

	PlaylistVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showrunner_playlist_version",
			Help: "Number of playlist snapshots published",
		},
	)
)

// Change notifier metrics
var (
	NotifierEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrunner_notifier_events_total",
			Help: "Total number of settled folder change events",
		},
		[]string{"op"},
	)
)

// Memory metrics
var (
	GoMemAllocBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showrunner_go_mem_alloc_bytes",
			Help: "Bytes of allocated heap objects",
		},
	)

	GoMemSysBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showrunner_go_mem_sys_bytes",
			Help: "Total bytes of memory obtained from the OS",
		},
	)

	GoGCRuns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showrunner_go_gc_runs",
			Help: "Number of completed GC cycles",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "showrunner_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
