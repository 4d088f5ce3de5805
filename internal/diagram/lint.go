package diagram

import (
	"fmt"
	"strings"
)

// diagramHeaders are the grammar keywords a diagram may open with.
var diagramHeaders = []string{
	"graph",
	"flowchart",
	"sequenceDiagram",
	"classDiagram",
	"stateDiagram",
	"stateDiagram-v2",
	"erDiagram",
	"gantt",
	"pie",
	"journey",
	"mindmap",
	"timeline",
	"quadrantChart",
}

// Lint statically checks diagram source without a rendering engine. It
// catches the failures the strict authoring rules exist to prevent:
// unknown diagram type, unbalanced brackets, and unterminated quotes.
// A nil return means the source passed the static checks, not that a
// full renderer would accept it.
func Lint(source string) *SyntaxError {
	lines := strings.Split(source, "\n")

	header := ""
	headerLine := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		header = trimmed
		headerLine = i + 1
		break
	}
	if header == "" {
		return &SyntaxError{Message: "empty diagram"}
	}
	if !knownHeader(header) {
		return &SyntaxError{
			Line:    headerLine,
			Message: fmt.Sprintf("unknown diagram type %q", firstWord(header)),
		}
	}

	// Bracket balance only holds for node-and-edge grammars; relational
	// and sequence grammars use braces as edge decoration.
	word := firstWord(header)
	if word == "graph" || word == "flowchart" {
		for i, line := range lines {
			if err := checkLine(line); err != nil {
				err.Line = i + 1
				return err
			}
		}
	}
	return nil
}

func knownHeader(line string) bool {
	word := firstWord(line)
	for _, h := range diagramHeaders {
		if word == h {
			return true
		}
	}
	return false
}

func firstWord(line string) string {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i]
	}
	return line
}

// checkLine verifies bracket nesting and quote termination within a
// single line. Bracket pairs never span lines in the grammar we emit,
// so a per-line check is sufficient and keeps error lines precise.
func checkLine(line string) *SyntaxError {
	var stack []rune
	inQuote := false
	for _, r := range line {
		if inQuote {
			if r == '"' {
				inQuote = false
			}
			continue
		}
		switch r {
		case '"':
			inQuote = true
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 {
				return &SyntaxError{Message: fmt.Sprintf("unexpected %q", string(r))}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !matches(open, r) {
				return &SyntaxError{Message: fmt.Sprintf("mismatched %q closed by %q", string(open), string(r))}
			}
		}
	}
	if inQuote {
		return &SyntaxError{Message: "unterminated quote"}
	}
	if len(stack) > 0 {
		return &SyntaxError{Message: fmt.Sprintf("unclosed %q", string(stack[len(stack)-1]))}
	}
	return nil
}

func matches(open, close rune) bool {
	switch open {
	case '(':
		return close == ')'
	case '[':
		return close == ']'
	case '{':
		return close == '}'
	}
	return false
}
