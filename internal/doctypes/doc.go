// Package doctypes classifies presentation documents by extension and reads
// the slide count out of them.
//
// Supported formats:
//   - Office Open XML: pptx, pptm, ppsx, ppsm
//   - OpenDocument: odp
//
// Both formats are zip containers. For OOXML decks the slide count is the
// number of ppt/slides/slideN.xml parts; for OpenDocument decks it is the
// number of draw:page elements in content.xml.
package doctypes
