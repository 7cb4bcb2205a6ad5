// Package logging provides the leveled logger used throughout showrunner.
//
// Levels, lowest to highest:
//   - DEBUG: poll results, reload details, state transitions
//   - INFO: playlist loads, presentations opened and closed
//   - WARN: recoverable problems (bad config values, notifier errors)
//   - ERROR: failures that halt the sequencer
//
// The initial level comes from the DEBUG or LOG_LEVEL environment variables
// and can be overridden at startup with SetLevel once configuration has been
// loaded.
package logging
