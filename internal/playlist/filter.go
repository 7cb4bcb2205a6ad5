package playlist

import (
	"path/filepath"
	"sort"
	"strings"

	"showrunner/internal/doctypes"
)

// DefaultTransientPrefix marks lock and temp files written by the authoring tool.
const DefaultTransientPrefix = "~$"

// DefaultExtensions lists the extensions accepted when none are configured.
var DefaultExtensions = []string{".pptx"}

// Filter decides which file names belong in a playlist.
type Filter struct {
	extensions      map[string]bool
	transientPrefix string
}

// NewFilter creates a Filter for the given extensions and transient prefix.
// An empty extension list falls back to DefaultExtensions.
func NewFilter(extensions []string, transientPrefix string) Filter {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if ext = doctypes.NormalizeExt(ext); ext != "" {
			exts[ext] = true
		}
	}
	return Filter{extensions: exts, transientPrefix: transientPrefix}
}

// DefaultFilter accepts .pptx files and skips "~$" transient files.
func DefaultFilter() Filter {
	return NewFilter(DefaultExtensions, DefaultTransientPrefix)
}

// IsTransient reports whether name is a lock/temp file of the authoring tool.
func (f Filter) IsTransient(name string) bool {
	return f.transientPrefix != "" && strings.HasPrefix(filepath.Base(name), f.transientPrefix)
}

// Match reports whether the file name (or path) belongs in a playlist.
func (f Filter) Match(name string) bool {
	base := filepath.Base(name)
	if base == "" || strings.HasPrefix(base, ".") || f.IsTransient(base) {
		return false
	}
	return f.extensions[strings.ToLower(filepath.Ext(base))]
}

// Extensions returns the accepted extensions in sorted order.
func (f Filter) Extensions() []string {
	exts := make([]string, 0, len(f.extensions))
	for ext := range f.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
