// Package artifact holds the edge operations on stored artifacts: fence
// stripping, clipboard copy, and export. Artifact content is stored with
// its fence markers; this package is the single place they are removed,
// so no consumer duplicates the strip logic.
package artifact

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"

	"consult/internal/thread"
)

var fenceMarkerRe = regexp.MustCompile("(?i)```(mermaid|html)\\n?|```")

// StripFences returns content with the fence markers removed and the
// result trimmed. Content without fences passes through trimmed.
func StripFences(content string) string {
	return strings.TrimSpace(fenceMarkerRe.ReplaceAllString(content, ""))
}

// Copy writes the fence-stripped content of an artifact to the system
// clipboard.
func Copy(a thread.Artifact) error {
	if err := clipboard.WriteAll(StripFences(a.Content)); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

// Ext returns the export file extension for an artifact type.
func Ext(t thread.ArtifactType) string {
	switch t {
	case thread.ArtifactMermaid:
		return ".mmd"
	case thread.ArtifactHTML:
		return ".html"
	default:
		return ".md"
	}
}

// slugRe collapses anything outside [a-z0-9] runs for filenames.
var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a filesystem-safe name from an artifact title.
func Slug(title string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "artifact"
	}
	return s
}
