// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// Configuration is loaded by [LoadConfig] from built-in defaults, an optional
// YAML file and environment variables, each layer overriding the previous
// one. A folder given on the command line overrides all of them.
//
// The following environment variables are supported:
//
//   - SHOWRUNNER_CONFIG: Path to a YAML configuration file
//   - SHOWRUNNER_FOLDER: Presentation folder, relative to the base directory (default: test)
//   - SHOWRUNNER_BASE_DIR: Base for relative folders (default: the executable's directory)
//   - SHOWRUNNER_EXTENSIONS: Comma separated extensions to play (default: .pptx)
//   - SHOWRUNNER_TRANSIENT_PREFIX: Name prefix of lock files to ignore (default: ~$)
//   - SHOWRUNNER_POLL_INTERVAL: Slideshow end check interval (default: 1s)
//   - SHOWRUNNER_SETTLE_DELAY: Quiet time after a folder change before reloading (default: 500ms)
//   - SHOWRUNNER_EMPTY_POLICY: wait or exit when the folder has no presentations (default: wait)
//   - SHOWRUNNER_ENGINE_COMMAND: Viewer program and arguments; empty runs headless
//   - SHOWRUNNER_SLIDE_DWELL: Time each slide is shown (default: 10s)
//   - SHOWRUNNER_GATE: prompt, terminal or auto (default: prompt)
//   - SHOWRUNNER_NOTIFIER: fsnotify or poll (default: fsnotify)
//   - SHOWRUNNER_NOTIFIER_INTERVAL: Scan interval of the poll notifier (default: 2s)
//   - METRICS_ENABLED: Enable the status and metrics server (default: true)
//   - METRICS_PORT: Status and metrics server port (default: 9090)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: false)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//
// The YAML file uses the same settings in snake case:
//
//	folder: decks
//	empty_policy: exit
//	engine:
//	  command: ["soffice", "--show"]
//	  slide_dwell: 8s
//	notifier:
//	  kind: poll
//	  interval: 5s
//	metrics:
//	  enabled: true
//	  port: "9090"
//
// Invalid durations fall back to their defaults with a warning. Unknown
// policy, gate or notifier names and unknown YAML keys are errors.
//
// # Folder Setup
//
// The presentation folder is created when it does not exist, so that files
// can be added while the sequencer waits for them.
//
// # Startup Logging
//
// Startup output is split into sections (banner, system information,
// configuration, playlist, engine, watcher, status server) with [OK] markers
// for completed steps. [LogServerStarted] prints the summary once everything
// is running.
//
// # Build Information
//
// Version information is injected at build time via ldflags:
//
//	go build -ldflags "-X showrunner/internal/startup.Version=1.0.0 \
//	  -X showrunner/internal/startup.Commit=abc123 \
//	  -X showrunner/internal/startup.BuildTime=2024-01-01T00:00:00Z"
//
// Use [GetBuildInfo] to retrieve version information at runtime.
//
// # Shutdown Logging
//
// [LogShutdownInitiated], [LogShutdownStep], [LogShutdownStepComplete] and
// [LogShutdownComplete] give shutdown the same sectioned format.
package startup
