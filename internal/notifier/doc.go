// Package notifier reports changes to the presentation folder.
//
// Two implementations are provided:
//   - FS: event driven, backed by fsnotify
//   - Poll: compares a listing of the folder on a fixed interval, for
//     filesystems where kernel notifications are not delivered
//
// Both watch a single directory level and only report files accepted by the
// playlist filter, so "~$" lock files written by the authoring tool while a
// deck is open never trigger a reload. Bursts of events are coalesced and
// delivered once the folder has been quiet for the settle delay, which keeps
// a reload from reading a half-written file.
package notifier
