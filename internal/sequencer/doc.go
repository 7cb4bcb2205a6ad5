// Package sequencer plays a folder of presentations one after another.
//
// The Sequencer is an explicit state machine:
//
//	Idle ──(playlist non-empty)──▶ Opening ──(open+run ok)──▶ Presenting
//	                                  │                           │
//	                             (open fails)          (position == slides+1)
//	                                  ▼                           ▼
//	                               Halted ◀──(no next / declined)── AwaitingConfirmation
//	                                  ▲                           │
//	                                  └──(no active show)         └──(confirmed)──▶ Opening
//
// Run drives the machine on the caller's goroutine. While Presenting it
// polls the engine on a fixed interval; detection latency is therefore at
// most one poll interval. The operator is asked through the gate before each
// presentation after the first, and only when a next presentation exists.
//
// Playlist reloads run on a separate goroutine (WatchChanges or Reload) and
// only swap the store's snapshot. The sequencer reads a snapshot at
// transition boundaries (Idle→Opening and AwaitingConfirmation→Opening)
// and resolves its index against that snapshot, never mid-show. A snapshot
// too short for the next index means there is nothing left to play.
//
// Halted is terminal: the open presentation is closed exactly once, the
// engine is told to quit, and Run returns an Outcome.
package sequencer
