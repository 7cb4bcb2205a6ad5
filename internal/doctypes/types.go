package doctypes

import (
	"path/filepath"
	"strings"
)

// FileType represents the type of a document in the presentation folder.
type FileType string

const (
	// FileTypePresentation represents a slide deck the engine can show.
	FileTypePresentation FileType = "presentation"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// Container identifies how slides are stored inside a deck.
type Container string

const (
	// ContainerOOXML is the Office Open XML package layout.
	ContainerOOXML Container = "ooxml"
	// ContainerODF is the OpenDocument package layout.
	ContainerODF Container = "odf"
	// ContainerUnknown is returned for unrecognised extensions.
	ContainerUnknown Container = ""
)

// PresentationExtensions maps file extensions to their container layout.
var PresentationExtensions = map[string]Container{
	".pptx": ContainerOOXML,
	".pptm": ContainerOOXML,
	".ppsx": ContainerOOXML,
	".ppsm": ContainerOOXML,
	".odp":  ContainerODF,
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".pptm": "application/vnd.ms-powerpoint.presentation.macroEnabled.12",
	".ppsx": "application/vnd.openxmlformats-officedocument.presentationml.slideshow",
	".ppsm": "application/vnd.ms-powerpoint.slideshow.macroEnabled.12",
	".odp":  "application/vnd.oasis.opendocument.presentation",
}

// NormalizeExt lowercases an extension and makes sure it has a leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// GetFileType returns the FileType for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".pptx").
func GetFileType(ext string) FileType {
	if _, ok := PresentationExtensions[ext]; ok {
		return FileTypePresentation
	}
	return FileTypeOther
}

// GetContainer returns the container layout for the file at path.
func GetContainer(path string) Container {
	return PresentationExtensions[strings.ToLower(filepath.Ext(path))]
}

// GetMimeType returns the MIME type for a given file extension.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// IsPresentation returns true if the extension represents a supported deck.
func IsPresentation(ext string) bool {
	return GetFileType(ext) == FileTypePresentation
}
