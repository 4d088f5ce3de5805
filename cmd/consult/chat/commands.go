package chat

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"consult/internal/artifact"
	"consult/internal/config"
	"consult/internal/logging"
	"consult/internal/thread"
)

// handleCommand processes /command input.
func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "/quit", "/exit", "/q":
		m.Shutdown()
		return m, tea.Quit

	case "/help":
		m.showHelp = true
		return m, nil

	case "/persona":
		if len(args) == 0 {
			m.showPicker = true
			return m, nil
		}
		return m.switchPersona(args[0])

	case "/personas":
		m.showPicker = true
		return m, nil

	case "/generate":
		if len(args) == 0 {
			m.notice = "Usage: /generate <n>"
			return m, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			m.notice = "Usage: /generate <n>"
			return m, nil
		}
		return m.triggerSuggestion(n - 1)

	case "/artifacts":
		t := m.activeThread()
		if len(t.Artifacts) == 0 {
			m.notice = "No artifacts in this thread."
			return m, nil
		}
		labels := make([]string, len(t.Artifacts))
		for i, a := range t.Artifacts {
			mark := ""
			if a.ID == t.ActiveArtifactID {
				mark = "*"
			}
			labels[i] = fmt.Sprintf("%d%s %s", i+1, mark, a.Title)
		}
		m.notice = "Artifacts: " + strings.Join(labels, " | ")
		return m, nil

	case "/delete":
		t := m.activeThread()
		target := t.ActiveArtifactID
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 || n > len(t.Artifacts) {
				m.notice = "Usage: /delete [n]"
				return m, nil
			}
			target = t.Artifacts[n-1].ID
		}
		if target == "" {
			m.notice = "No active artifact to delete."
			return m, nil
		}
		m.store.DeleteArtifact(m.activeID, target)
		m.notice = "Artifact deleted."
		m.syncPanes()
		return m, nil

	case "/copy":
		a, ok := m.workspace.Active()
		if !ok {
			m.notice = "No active artifact to copy."
			return m, nil
		}
		if err := artifact.Copy(a); err != nil {
			logging.UIWarn("copy failed: %v", err)
			m.notice = "Clipboard copy failed."
		} else {
			m.notice = fmt.Sprintf("Copied %q to clipboard.", a.Title)
		}
		return m, nil

	case "/open":
		return m, m.openActive()

	case "/export":
		dir := filepath.Join(config.StateDir(), "exports", m.activeID)
		if len(args) > 0 {
			dir = args[0]
		}
		return m, m.exportAll(dir)

	case "/layout":
		m.splitPane.CycleMode()
		return m.relayout()

	default:
		m.notice = fmt.Sprintf("Unknown command %s. Try /help.", cmd)
		return m, nil
	}
}

// openActive previews the active artifact in a browser window.
func (m Model) openActive() tea.Cmd {
	a, ok := m.workspace.Active()
	if !ok {
		return func() tea.Msg { return noticeMsg("No active artifact to open.") }
	}
	if m.engine == nil {
		return func() tea.Msg { return noticeMsg("Browser preview is not available.") }
	}

	engine := m.engine
	timeout := m.appCfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := contextWithTimeout(timeout)
		defer cancel()

		body := artifact.StripFences(a.Content)
		content := body
		if a.Type == thread.ArtifactMermaid {
			svg, err := engine.Render(ctx, body)
			if err != nil {
				logging.UIWarn("open render failed: %v", err)
				return noticeMsg("Could not render the diagram: " + err.Error())
			}
			content = "<!DOCTYPE html><html><body>" + svg + "</body></html>"
		}
		if err := engine.Preview(ctx, content); err != nil {
			logging.UIWarn("open preview failed: %v", err)
			return noticeMsg("Could not open a browser preview.")
		}
		return noticeMsg(fmt.Sprintf("Opened %q in the browser.", a.Title))
	}
}

// exportAll writes every artifact of the focused thread to dir.
func (m Model) exportAll(dir string) tea.Cmd {
	arts := m.activeThread().Artifacts
	return func() tea.Msg {
		if len(arts) == 0 {
			return noticeMsg("Nothing to export.")
		}
		if err := artifact.ExportAll(dir, arts); err != nil {
			logging.UIWarn("export failed: %v", err)
			return noticeMsg("Export failed: " + err.Error())
		}
		return noticeMsg(fmt.Sprintf("Exported %d artifact(s) to %s", len(arts), dir))
	}
}

const helpText = `## Commands

| Command | Description |
|---------|-------------|
| /persona [id] | Switch expert (no id opens the picker) |
| /personas | Open the expert picker |
| /generate <n> | Accept suggestion n from the latest reply |
| /artifacts | List this thread's artifacts |
| /delete [n] | Delete artifact n (default: the active one) |
| /copy | Copy the active artifact to the clipboard |
| /open | Preview the active artifact in a browser |
| /export [dir] | Write all artifacts of this thread to disk |
| /layout | Cycle chat / split / workspace layout |
| /help | Show this help |
| /quit | Exit |

## Keys

| Key | Action |
|-----|--------|
| Tab | Expert picker |
| Alt+1..9 | Accept numbered suggestion |
| Ctrl+S | Cycle layout |
| Ctrl+T | Toggle artifact source view |
| Ctrl+J / Ctrl+K | Next / previous artifact |
| Esc | Close overlay, or exit |
`
