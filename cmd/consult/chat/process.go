package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"consult/internal/gateway"
	"consult/internal/parser"
	"consult/internal/persona"
	"consult/internal/thread"
)

// consultTurn runs a conversational turn in the background. The history
// snapshot is taken before the user's new message so the prompt builder
// sees it exactly once.
func (m Model) consultTurn(p persona.Persona, history []thread.Message, input string) tea.Cmd {
	gw := m.gw
	timeout := m.appCfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		raw, err := gw.Consult(ctx, p, history, input)
		if err != nil {
			return turnResultMsg{personaID: p.ID, err: err}
		}
		return turnResultMsg{personaID: p.ID, result: parser.Parse(raw)}
	}
}

// generateTurn runs a directed artifact-generation turn for an accepted
// suggestion.
func (m Model) generateTurn(p persona.Persona, s thread.Suggestion) tea.Cmd {
	gw := m.gw
	timeout := m.appCfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		raw, err := gw.GenerateArtifact(ctx, p, s)
		if err != nil {
			return turnResultMsg{personaID: p.ID, directed: true, suggestion: s, err: err}
		}
		return turnResultMsg{
			personaID:  p.ID,
			result:     parser.Parse(raw),
			directed:   true,
			suggestion: s,
		}
	}
}

// directedText is the user-visible message recorded for an accepted
// suggestion.
func directedText(s thread.Suggestion) string {
	return gateway.DirectedTurnText(s)
}

func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
