// Package diagram is the boundary to the diagram-rendering engine. The
// engine consumes diagram-grammar text and produces vector markup or a
// syntax error; nothing here ever panics the caller, and a malformed
// diagram stays stored and selectable.
package diagram

import (
	"context"
	"fmt"
)

// Engine renders diagram-grammar text to vector markup.
type Engine interface {
	// Render returns SVG markup for source, or a *SyntaxError when the
	// grammar is invalid.
	Render(ctx context.Context, source string) (string, error)
}

// SyntaxError describes a rejected diagram. Line is 1-based and zero
// when the failure is not attributable to a single line.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("diagram syntax error on line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("diagram syntax error: %s", e.Message)
}
