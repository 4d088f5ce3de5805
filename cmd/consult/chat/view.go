package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"consult/internal/thread"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.showPicker {
		return m.styles.Content.Render(m.personaList.View())
	}
	if m.showHelp {
		return m.styles.Content.Render(m.safeRenderMarkdown(helpText))
	}

	header := m.renderHeader()
	chatView := m.styles.Content.Render(m.viewport.View())
	body := m.splitPane.Render(chatView, m.workspace.View())

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1)
	inputArea := inputStyle.Render(m.textarea.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		inputArea,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" consult ")

	personaLabel := "no expert"
	if p, ok := m.activePersona(); ok {
		personaLabel = p.Name
		if p.OrgName != "" {
			personaLabel += " · " + p.OrgName
		}
	}
	expert := m.styles.Badge.Render(personaLabel)

	var status string
	if m.loading[m.activeID] {
		status = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", m.styles.Muted.Render("Consulting..."))
	} else {
		status = m.styles.Success.Render("Ready")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", expert, "  ", status)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

func (m Model) renderFooter() string {
	left := m.workspace.Summary()
	if m.notice != "" {
		left = m.notice
	}
	hotkeys := "Tab: experts | Alt+1..9: suggestion | Ctrl+S: layout | /help"
	timestamp := time.Now().Format("15:04")
	return m.styles.Footer.Render(fmt.Sprintf("%s | %s | %s", left, timestamp, hotkeys))
}

// renderHistory renders the focused thread's messages, suggestions
// included as numbered affordances on the latest assistant reply.
func (m Model) renderHistory(t thread.Thread) string {
	var sb strings.Builder

	lastAssistant := -1
	for i, msg := range t.Messages {
		if msg.Role == thread.RoleAssistant {
			lastAssistant = i
		}
	}

	name := "Expert"
	if p, ok := m.activePersona(); ok {
		name = p.Name
	}

	for i, msg := range t.Messages {
		switch msg.Role {
		case thread.RoleUser:
			userStyle := m.styles.Bold.Foreground(m.styles.Theme.Primary).MarginTop(1)
			sb.WriteString(userStyle.Render("You") + "\n")
			if msg.GeneratingArtifact {
				sb.WriteString(m.styles.Muted.Render(msg.Content))
			} else {
				sb.WriteString(m.styles.UserInput.Render(msg.Content))
			}
			sb.WriteString("\n\n")

		default:
			assistantStyle := m.styles.Bold.Foreground(m.styles.Theme.Accent).MarginTop(1)
			sb.WriteString(assistantStyle.Render(name) + "\n")
			sb.WriteString(m.safeRenderMarkdown(msg.Content))
			sb.WriteString("\n")

			// Affordances stay actionable only on the latest reply.
			if i == lastAssistant && len(msg.Suggestions) > 0 {
				sb.WriteString(m.renderSuggestions(msg.Suggestions))
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}

func (m Model) renderSuggestions(suggestions []thread.Suggestion) string {
	chips := make([]string, 0, len(suggestions))
	for i, s := range suggestions {
		label := fmt.Sprintf("%d · %s (%s)", i+1, s.Title, s.Type)
		chips = append(chips, m.styles.Suggestion.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	hint := m.styles.Muted.Render("Alt+number or /generate <n> to accept")
	return lipgloss.JoinVertical(lipgloss.Left, row, hint)
}

// safeRenderMarkdown renders markdown with panic recovery; a renderer
// failure falls back to the raw text.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		if rendered, err := m.renderer.Render(content); err == nil {
			return rendered
		}
	}
	return content
}
