// Package playlist builds and holds the ordered list of presentation decks
// for a folder.
//
// A Playlist is an immutable snapshot: it is rebuilt wholesale from the
// directory on every reload and never patched in place. The Store publishes
// the current snapshot through an atomic pointer so the sequencer can keep
// reading the previous snapshot while a reload is in progress.
//
// Files are accepted by a Filter:
//   - the extension must be one of the configured presentation extensions
//   - names starting with the transient prefix (the "~$" lock files written
//     by the authoring tool while a deck is open) are skipped
//   - dot files and directories are skipped
//
// Only the top level of the folder is read.
package playlist
