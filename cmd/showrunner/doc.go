// Package main provides the entry point for showrunner.
//
// showrunner plays every presentation in a folder, one after another, in file
// name order. After each presentation ends it asks the operator whether to
// open the next one. Files added to or removed from the folder during
// playback are picked up at the next presentation boundary.
//
// # Usage
//
//	showrunner [-config showrunner.yaml] [folder]
//
// Without a folder argument the folder named "test" next to the executable
// is played. See [showrunner/internal/startup] for every setting.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads the YAML file and environment variables,
//     creates the presentation folder if it is missing
//  2. Playlist Scan: Lists the folder once before anything else starts
//  3. Component Initialization:
//     - Presentation engine: the external viewer, or a headless timer
//     - Confirmation gate: modal prompt, line prompt or automatic
//     - Folder watcher: fsnotify or polling, with a settle delay
//     - Metrics collector: refreshes Prometheus gauges periodically
//     - Status server: health, status, playlist and metrics (optional)
//  4. Playback: the sequencer runs until it halts
//  5. Shutdown: every background component is stopped
//
// # Exit Codes
//
//   - 0: the playlist ended, the operator declined the next presentation,
//     the folder was empty under the exit policy, or playback was interrupted
//   - 1: a presentation failed to open or run, the engine was unavailable,
//     or the configuration was invalid
//
// # Graceful Shutdown
//
// SIGINT and SIGTERM interrupt playback at the next suspension point. The
// open presentation is closed and the engine quits before the process exits:
//
//  1. Stop the folder watcher
//  2. Stop the metrics collector
//  3. Shut down the status server (10s timeout)
//
// A confirmation prompt that is on screen is not cancelled by a signal; the
// shutdown follows once it is answered.
//
// # Related Packages
//
//   - [showrunner/internal/sequencer]: playback state machine
//   - [showrunner/internal/playlist]: folder listing and snapshots
//   - [showrunner/internal/engine]: presentation engine
//   - [showrunner/internal/gate]: operator confirmation
//   - [showrunner/internal/notifier]: folder change notifications
//   - [showrunner/internal/handlers]: status HTTP handlers
//   - [showrunner/internal/startup]: configuration and initialization
package main
