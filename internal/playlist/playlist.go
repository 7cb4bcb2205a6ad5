package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"showrunner/internal/logging"
)

// Artifact is one presentation file in the playlist.
type Artifact struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// NewArtifact builds an Artifact whose title is the file's base name.
func NewArtifact(path string) Artifact {
	return Artifact{Path: path, Title: filepath.Base(path)}
}

// Playlist is an ordered, duplicate-free snapshot of artifacts sorted by path.
// The zero value is an empty playlist.
type Playlist struct {
	folder    string
	artifacts []Artifact
}

// New builds a Playlist from arbitrary paths: it sorts them and drops
// duplicates. Filtering is the caller's job.
func New(folder string, paths []string) Playlist {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	artifacts := make([]Artifact, 0, len(sorted))
	for i, p := range sorted {
		if i > 0 && p == sorted[i-1] {
			continue
		}
		artifacts = append(artifacts, NewArtifact(p))
	}
	return Playlist{folder: folder, artifacts: artifacts}
}

// Folder returns the folder the playlist was read from.
func (p Playlist) Folder() string { return p.folder }

// Len returns the number of artifacts.
func (p Playlist) Len() int { return len(p.artifacts) }

// Empty reports whether the playlist has no artifacts.
func (p Playlist) Empty() bool { return len(p.artifacts) == 0 }

// At returns the artifact at index i. ok is false when i is out of range.
func (p Playlist) At(i int) (Artifact, bool) {
	if i < 0 || i >= len(p.artifacts) {
		return Artifact{}, false
	}
	return p.artifacts[i], true
}

// IndexOf returns the position of path in the playlist, or -1.
func (p Playlist) IndexOf(path string) int {
	i := sort.Search(len(p.artifacts), func(i int) bool { return p.artifacts[i].Path >= path })
	if i < len(p.artifacts) && p.artifacts[i].Path == path {
		return i
	}
	return -1
}

// Artifacts returns a copy of the artifact list.
func (p Playlist) Artifacts() []Artifact {
	out := make([]Artifact, len(p.artifacts))
	copy(out, p.artifacts)
	return out
}

// Titles returns the display titles in playlist order.
func (p Playlist) Titles() []string {
	titles := make([]string, len(p.artifacts))
	for i, a := range p.artifacts {
		titles[i] = a.Title
	}
	return titles
}

func (p Playlist) String() string {
	return fmt.Sprintf("%d presentation(s) [%s]", p.Len(), strings.Join(p.Titles(), ", "))
}

// Reload lists folder, keeps the regular files accepted by filter and
// returns them as a new Playlist. An empty folder yields an empty playlist,
// not an error.
func Reload(folder string, filter Filter) (Playlist, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return Playlist{}, fmt.Errorf("failed to read presentation folder: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !filter.Match(entry.Name()) {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		if !isRegularFile(path, entry) {
			continue
		}
		paths = append(paths, path)
	}
	return New(folder, paths), nil
}

// isRegularFile reports whether entry is a regular file, following
// symlinks. Dangling links and links to directories are skipped.
func isRegularFile(path string, entry os.DirEntry) bool {
	t := entry.Type()
	if t.IsRegular() {
		return true
	}
	if t&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		logging.Debug("Skipping unreadable link %s: %v", path, err)
		return false
	}
	return info.Mode().IsRegular()
}
