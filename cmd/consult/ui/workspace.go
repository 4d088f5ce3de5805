package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"consult/internal/artifact"
	"consult/internal/diagram"
	"consult/internal/thread"
)

// WorkspacePane renders the active thread's artifact collection: a tab
// strip, the selected artifact's body, and an inline error panel when
// the artifact fails its static check. The pane is display-only; all
// mutation goes through the thread store and arrives via SetThread.
type WorkspacePane struct {
	Viewport viewport.Model
	Styles   Styles

	width  int
	height int

	artifacts  []thread.Artifact
	activeID   string
	showSource bool
	checkErr   *diagram.SyntaxError
}

// NewWorkspacePane creates an empty workspace pane.
func NewWorkspacePane(styles Styles, width, height int) WorkspacePane {
	vp := viewport.New(width, height)
	return WorkspacePane{Viewport: vp, Styles: styles, width: width, height: height}
}

// SetSize updates the pane dimensions.
func (w *WorkspacePane) SetSize(width, height int) {
	w.width = width
	w.height = height
	w.Viewport.Width = width
	// Tab strip and error panel are drawn outside the viewport.
	vh := height - 4
	if vh < 1 {
		vh = 1
	}
	w.Viewport.Height = vh
	w.refresh()
}

// SetThread replaces the displayed collection. Switching to a different
// active artifact resets the source toggle back to the rendered view.
func (w *WorkspacePane) SetThread(artifacts []thread.Artifact, activeID string) {
	if activeID != w.activeID {
		w.showSource = false
	}
	w.artifacts = artifacts
	w.activeID = activeID
	w.refresh()
}

// ToggleSource flips between rendered and raw-source display.
func (w *WorkspacePane) ToggleSource() {
	w.showSource = !w.showSource
	w.refresh()
}

// ShowingSource reports whether the raw-source view is active.
func (w *WorkspacePane) ShowingSource() bool {
	return w.showSource
}

// Active returns the displayed artifact, if any.
func (w *WorkspacePane) Active() (thread.Artifact, bool) {
	for _, a := range w.artifacts {
		if a.ID == w.activeID {
			return a, true
		}
	}
	return thread.Artifact{}, false
}

func (w *WorkspacePane) refresh() {
	w.checkErr = nil
	a, ok := w.Active()
	if !ok {
		w.Viewport.SetContent("")
		return
	}

	body := artifact.StripFences(a.Content)
	switch a.Type {
	case thread.ArtifactMermaid:
		w.checkErr = diagram.Lint(body)
	case thread.ArtifactHTML:
		w.checkErr = diagram.CheckHTML(body)
	}

	if w.showSource {
		w.Viewport.SetContent(w.Styles.CodeBlock.Width(w.Viewport.Width - 2).Render(body))
	} else {
		w.Viewport.SetContent(w.renderVisual(a, body))
	}
	w.Viewport.GotoTop()
}

// renderVisual is the default presentation: title, type badge, and the
// content framed for reading rather than copying.
func (w *WorkspacePane) renderVisual(a thread.Artifact, body string) string {
	title := w.Styles.Title.Render(a.Title)
	badge := w.Styles.Badge.Render(string(a.Type))
	head := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", badge)

	var status string
	if w.checkErr != nil {
		status = w.Styles.Warning.Render("⚠ has issues, see panel below")
	} else {
		status = w.Styles.Success.Render("✓ valid " + string(a.Type))
	}

	content := w.Styles.CodeBlock.Width(w.Viewport.Width - 2).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, head, status, "", content)
}

func (w *WorkspacePane) renderTabs() string {
	if len(w.artifacts) == 0 {
		return ""
	}
	tabs := make([]string, 0, len(w.artifacts))
	for _, a := range w.artifacts {
		label := a.Title
		if len(label) > 18 {
			label = label[:17] + "…"
		}
		if a.ID == w.activeID {
			tabs = append(tabs, w.Styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, w.Styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (w *WorkspacePane) renderErrorPanel() string {
	if w.checkErr == nil {
		return ""
	}
	header := w.Styles.Error.Render("Syntax") + w.Styles.Muted.Render("  artifact kept, fix and regenerate")
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Destructive).
		Padding(0, 1).
		Width(w.width - 2).
		MaxWidth(w.width)
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, header, w.checkErr.Error()))
}

// View renders the whole pane.
func (w *WorkspacePane) View() string {
	if len(w.artifacts) == 0 {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			w.Styles.Title.Render("Workspace"),
			"",
			w.Styles.Muted.Render("No artifacts yet."),
			w.Styles.Muted.Render("Ask for a diagram or mockup, or accept a suggestion."),
		)
		return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, empty)
	}

	mode := "visual"
	if w.showSource {
		mode = "source"
	}
	footer := w.Styles.Muted.Render(fmt.Sprintf("[%s] Ctrl+T: toggle source  Ctrl+J/K: switch artifact", mode))

	parts := []string{w.renderTabs(), w.Viewport.View()}
	if panel := w.renderErrorPanel(); panel != "" {
		parts = append(parts, panel)
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// NextArtifactID returns the id after the active one, wrapping around.
func (w *WorkspacePane) NextArtifactID() string {
	return w.neighborID(1)
}

// PrevArtifactID returns the id before the active one, wrapping around.
func (w *WorkspacePane) PrevArtifactID() string {
	return w.neighborID(-1)
}

func (w *WorkspacePane) neighborID(step int) string {
	if len(w.artifacts) == 0 {
		return ""
	}
	idx := 0
	for i, a := range w.artifacts {
		if a.ID == w.activeID {
			idx = i
			break
		}
	}
	n := len(w.artifacts)
	return w.artifacts[((idx+step)%n+n)%n].ID
}

// Summary is a one-line description used by the footer.
func (w *WorkspacePane) Summary() string {
	if len(w.artifacts) == 0 {
		return "workspace empty"
	}
	active, _ := w.Active()
	return fmt.Sprintf("%d artifact(s), active: %s", len(w.artifacts), strings.TrimSpace(active.Title))
}
