// Package metrics provides Prometheus instrumentation for showrunner.
//
// All metrics are prefixed with "showrunner_" and registered with the default
// Prometheus registry through promauto.
//
// # Metric Categories
//
// ## HTTP Metrics
//
// Track requests to the status server:
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Sequencer Metrics
//
//   - SequencerState: Gauge per state, 1 for the current one
//   - SequencerTransitionsTotal: Counter of transitions by from/to state
//   - SequencerHaltsTotal: Counter of halts by reason
//   - SequencerUptimeSeconds: Gauge of seconds since start
//
// ## Presentation Metrics
//
//   - PresentationsStartedTotal, PresentationsCompletedTotal: Counters
//   - PresentationDuration: Histogram of slideshow run time
//   - PresentationsPlayed: Gauge of presentations finished in this run
//
// ## Confirmation and Engine Metrics
//
//   - ConfirmationsTotal: Counter by result (accepted/declined/error)
//   - ConfirmationWaitDuration: Histogram of operator response time
//   - EnginePollDuration, EnginePollsTotal: position query latency and count
//   - EngineErrorsTotal: Counter of engine failures by operation
//
// ## Playlist and Notifier Metrics
//
//   - PlaylistSize, PlaylistVersion, PlaylistLastReloadTimestamp: Gauges
//   - PlaylistReloadsTotal: Counter by status
//   - PlaylistReloadDuration: Histogram of folder listing time
//   - NotifierEventsTotal: Counter of settled change events by op
//
// ## Memory Metrics
//
//   - GoMemAllocBytes, GoMemSysBytes, GoGCRuns: runtime.MemStats snapshots
//
// ## Application Info
//
//   - AppInfo: Gauge with version, commit, and Go version labels
//
// # Recording Metrics
//
// The sequencer reports through [NewSequencerObserver]; everything else is
// updated by the [Collector] from a [StatsProvider]:
//
//	collector := metrics.NewCollector(provider, 15*time.Second)
//	collector.Start()
//	defer collector.Stop()
//
// # Prometheus Queries
//
// Operator decline rate:
//
//	rate(showrunner_confirmations_total{result="declined"}[1h]) /
//	rate(showrunner_confirmations_total[1h])
//
// Average presentation length:
//
//	rate(showrunner_presentation_duration_seconds_sum[1h]) /
//	rate(showrunner_presentation_duration_seconds_count[1h])
package metrics
