package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// PaneMode selects how the conversation and the workspace share the
// terminal.
type PaneMode int

const (
	ModeChatOnly  PaneMode = iota // conversation full width
	ModeSplit                     // conversation | workspace
	ModeWorkspace                 // workspace full width
)

// SplitPane lays the conversation and workspace panes out side by side
// and tracks which one has keyboard focus.
type SplitPane struct {
	Styles Styles
	Mode   PaneMode

	width          int
	height         int
	workspaceFocus bool
}

func NewSplitPane(styles Styles) *SplitPane {
	return &SplitPane{Styles: styles, Mode: ModeChatOnly}
}

// SetSize updates the layout dimensions.
func (s *SplitPane) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// CycleMode advances chat-only -> split -> workspace-only -> chat-only.
func (s *SplitPane) CycleMode() {
	switch s.Mode {
	case ModeChatOnly:
		s.Mode = ModeSplit
	case ModeSplit:
		s.Mode = ModeWorkspace
	default:
		s.Mode = ModeChatOnly
	}
	if s.Mode == ModeChatOnly {
		s.workspaceFocus = false
	}
	if s.Mode == ModeWorkspace {
		s.workspaceFocus = true
	}
}

// SetMode forces a specific layout.
func (s *SplitPane) SetMode(mode PaneMode) {
	s.Mode = mode
}

// ToggleFocus switches keyboard focus between panes in split mode.
func (s *SplitPane) ToggleFocus() {
	if s.Mode == ModeSplit {
		s.workspaceFocus = !s.workspaceFocus
	}
}

// WorkspaceFocused reports whether keys go to the workspace pane.
func (s *SplitPane) WorkspaceFocused() bool {
	return s.workspaceFocus
}

// ChatWidth returns the width available to the conversation pane under
// the current mode.
func (s *SplitPane) ChatWidth() int {
	w := s.width
	if s.Mode == ModeSplit {
		w = s.width - s.WorkspaceWidth() - 1
	}
	if w < 1 {
		w = 1
	}
	return w
}

// WorkspaceWidth returns the width given to the workspace pane.
func (s *SplitPane) WorkspaceWidth() int {
	switch s.Mode {
	case ModeSplit:
		w := s.width / 2
		if w < 1 {
			w = 1
		}
		return w
	case ModeWorkspace:
		return s.width
	default:
		return 0
	}
}

// Render composes the two pane views under the current mode.
func (s *SplitPane) Render(chatView, workspaceView string) string {
	switch s.Mode {
	case ModeSplit:
		divider := s.Styles.Divider.Render("│")
		return lipgloss.JoinHorizontal(lipgloss.Top, chatView, divider, workspaceView)
	case ModeWorkspace:
		return workspaceView
	default:
		return chatView
	}
}
