// Package parser extracts the in-band micro-protocol from raw backend
// responses: fenced artifact blocks, [SUGGEST: type | title] markers, and
// the cleaned display string. Parsing is a tolerant regex scan; a
// malformed or partial marker is simply not matched, never an error.
package parser

import (
	"regexp"
	"strings"

	"consult/internal/thread"
)

// ArtifactAck is the display string substituted when a response consisted
// of nothing but artifact blocks.
const ArtifactAck = "I've generated the requested artifact for your workspace."

var (
	fenceRe   = regexp.MustCompile("(?is)```(mermaid|html)([\\s\\S]*?)```")
	suggestRe = regexp.MustCompile(`(?i)\[SUGGEST:\s*(mermaid|html)\s*\|\s*(.*?)\]`)
	// Strip pattern for any suggestion-shaped marker, matched or not by
	// type, mirroring the tolerant cleanup of the source behavior.
	suggestStripRe = regexp.MustCompile(`(?i)\[SUGGEST:.*?\]`)
)

// Block is one fenced artifact region. Content includes the fence
// markers; consumers strip them at the edge.
type Block struct {
	Type    thread.ArtifactType
	Content string
}

// Result is the outcome of parsing one backend response.
type Result struct {
	Blocks      []Block
	Suggestions []thread.Suggestion
	Display     string
}

// Parse splits a raw backend response into artifact blocks, suggestions,
// and the cleaned display string.
func Parse(raw string) Result {
	var res Result

	for _, m := range fenceRe.FindAllStringSubmatch(raw, -1) {
		res.Blocks = append(res.Blocks, Block{
			Type:    thread.ArtifactType(strings.ToLower(m[1])),
			Content: m[0],
		})
	}

	for _, m := range suggestRe.FindAllStringSubmatch(raw, -1) {
		res.Suggestions = append(res.Suggestions, thread.Suggestion{
			Type:  thread.ArtifactType(strings.ToLower(m[1])),
			Title: strings.TrimSpace(m[2]),
		})
	}

	display := suggestStripRe.ReplaceAllString(raw, "")
	display = fenceRe.ReplaceAllString(display, "")
	display = strings.TrimSpace(display)
	if display == "" && len(res.Blocks) > 0 {
		display = ArtifactAck
	}
	res.Display = display

	return res
}
