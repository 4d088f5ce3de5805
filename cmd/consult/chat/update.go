package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"consult/internal/logging"
	"consult/internal/parser"
	"consult/internal/persona"
	"consult/internal/thread"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.Shutdown()
			return m, tea.Quit
		case tea.KeyEsc:
			if m.showPicker || m.showHelp {
				m.showPicker = false
				m.showHelp = false
				return m, nil
			}
			m.Shutdown()
			return m, tea.Quit
		}

		if m.showHelp {
			if msg.Type == tea.KeyEnter {
				m.showHelp = false
			}
			return m, nil
		}

		if m.showPicker {
			return m.updatePicker(msg)
		}

		switch msg.Type {
		case tea.KeyTab:
			m.showPicker = true
			return m, nil

		case tea.KeyCtrlS:
			m.splitPane.CycleMode()
			return m.relayout()

		case tea.KeyCtrlT:
			m.workspace.ToggleSource()
			return m, nil

		case tea.KeyCtrlJ:
			if id := m.workspace.NextArtifactID(); id != "" {
				m.store.SetActiveArtifact(m.activeID, id)
				m.syncPanes()
			}
			return m, nil

		case tea.KeyCtrlK:
			if id := m.workspace.PrevArtifactID(); id != "" {
				m.store.SetActiveArtifact(m.activeID, id)
				m.syncPanes()
			}
			return m, nil

		case tea.KeyEnter:
			if msg.Alt {
				break // newline
			}
			return m.handleSubmit()
		}

		// Alt+1..9 accepts the numbered suggestion affordance.
		if msg.Alt && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
			return m.triggerSuggestion(int(msg.Runes[0] - '1'))
		}

		m.textarea, tiCmd = m.textarea.Update(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.relayout()

	case spinner.TickMsg:
		if m.anyLoading() {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case turnResultMsg:
		m = m.commitTurn(msg)
		return m, nil

	case noticeMsg:
		m.notice = string(msg)
		return m, nil

	case catalogMsg:
		return m.applyCatalog(msg)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if item, ok := m.personaList.SelectedItem().(personaItem); ok {
			m.showPicker = false
			return m.switchPersona(item.p.ID)
		}
		m.showPicker = false
		return m, nil
	}
	var cmd tea.Cmd
	m.personaList, cmd = m.personaList.Update(msg)
	return m, cmd
}

// switchPersona focuses another thread. In-flight turns for the
// previous persona keep running and commit to their own thread.
func (m Model) switchPersona(id string) (tea.Model, tea.Cmd) {
	if _, ok := m.registry.Get(id); !ok {
		m.notice = "Unknown expert: " + id
		return m, nil
	}
	m.activeID = id
	m.notice = ""
	m.syncPanes()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}

	if strings.HasPrefix(input, "/") {
		m.textarea.Reset()
		return m.handleCommand(input)
	}

	if m.loading[m.activeID] {
		m.notice = "The expert is still thinking; wait for the reply."
		return m, nil
	}

	p, ok := m.activePersona()
	if !ok {
		m.notice = "No expert selected."
		return m, nil
	}

	history := m.activeThread().Messages
	if !m.store.AppendUserTurn(m.activeID, input) {
		return m, nil
	}

	m.textarea.Reset()
	m.notice = ""
	m.loading[m.activeID] = true
	m.syncPanes()
	m.viewport.GotoBottom()

	logging.UI("turn persona=%s len=%d", p.ID, len(input))
	return m, tea.Batch(m.spinner.Tick, m.consultTurn(p, history, input))
}

// triggerSuggestion accepts suggestion affordance n (zero-based) from
// the latest assistant message of the focused thread.
func (m Model) triggerSuggestion(n int) (tea.Model, tea.Cmd) {
	suggestions := m.lastSuggestions()
	if n < 0 || n >= len(suggestions) {
		return m, nil
	}
	if m.loading[m.activeID] {
		m.notice = "The expert is still thinking; wait for the reply."
		return m, nil
	}
	p, ok := m.activePersona()
	if !ok {
		return m, nil
	}
	s := suggestions[n]

	m.store.AppendDirectedTurn(m.activeID, directedText(s))
	m.notice = ""
	m.loading[m.activeID] = true
	m.syncPanes()
	m.viewport.GotoBottom()

	logging.UI("generate persona=%s type=%s title=%q", p.ID, s.Type, s.Title)
	return m, tea.Batch(m.spinner.Tick, m.generateTurn(p, s))
}

func (m Model) applyCatalog(reg catalogMsg) (tea.Model, tea.Cmd) {
	m.registry = reg
	m.store.AddPersonas(seedsFor(reg))
	m.personaList.SetItems(pickerItems(reg))

	// The focused persona may have left the catalog; its thread stays,
	// but focus moves to the first remaining expert.
	if _, ok := m.registry.Get(m.activeID); !ok {
		if all := (*persona.Registry)(reg).All(); len(all) > 0 {
			m.activeID = all[0].ID
		}
	}
	m.notice = "Expert catalog reloaded."
	m.syncPanes()
	return m, m.waitForCatalog()
}

func (m Model) anyLoading() bool {
	for _, v := range m.loading {
		if v {
			return true
		}
	}
	return false
}

// syncPanes re-renders the conversation viewport and the workspace from
// the focused thread.
func (m *Model) syncPanes() {
	t := m.activeThread()
	m.viewport.SetContent(m.renderHistory(t))
	m.workspace.SetThread(t.Artifacts, t.ActiveArtifactID)
}

// relayout recomputes component sizes after a mode or window change.
func (m Model) relayout() (tea.Model, tea.Cmd) {
	if m.width == 0 || m.height == 0 {
		return m, nil
	}

	const (
		headerHeight = 3
		footerHeight = 2
		inputHeight  = 5
	)

	m.splitPane.SetSize(m.width, m.height)

	chatWidth := m.splitPane.ChatWidth() - 4
	if chatWidth < 1 {
		chatWidth = 1
	}
	contentHeight := m.height - headerHeight - footerHeight - inputHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(chatWidth, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = contentHeight
	}
	m.textarea.SetWidth(chatWidth - 2)
	m.personaList.SetSize(m.width, m.height-headerHeight)
	m.workspace.SetSize(m.splitPane.WorkspaceWidth(), contentHeight+inputHeight)

	// Word wrap tracks the chat pane width.
	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(chatWidth-2),
	); err == nil {
		m.renderer = r
	}

	m.syncPanes()
	m.viewport.GotoBottom()
	return m, nil
}

// commitTurn applies a finished backend turn to its originating thread.
// A failed turn leaves the thread exactly as the user left it.
func (m Model) commitTurn(msg turnResultMsg) Model {
	m.loading[msg.personaID] = false

	if msg.err != nil {
		m.notice = "The consultation failed. Your message is preserved; try again."
		if msg.personaID == m.activeID {
			m.syncPanes()
		}
		return m
	}

	display := msg.result.Display
	suggestions := msg.result.Suggestions
	if msg.directed {
		// Directed turns are artifact-only: prose and new suggestions
		// in the response are discarded.
		suggestions = nil
		if len(msg.result.Blocks) == 0 {
			display = "The expert could not produce the requested artifact."
		} else {
			display = parser.ArtifactAck
		}
	}

	artifacts := make([]thread.Artifact, 0, len(msg.result.Blocks))
	for _, b := range msg.result.Blocks {
		title := blockTitle(b.Type)
		if msg.directed && msg.suggestion.Title != "" {
			title = msg.suggestion.Title
		}
		artifacts = append(artifacts, thread.NewArtifact(b.Type, b.Content, title))
	}

	m.store.CommitAssistantTurn(msg.personaID, display, suggestions, artifacts)

	if msg.personaID == m.activeID {
		m.syncPanes()
		m.viewport.GotoBottom()
	}
	return m
}

func blockTitle(t thread.ArtifactType) string {
	switch t {
	case thread.ArtifactMermaid:
		return "Mermaid Diagram"
	case thread.ArtifactHTML:
		return "HTML Mockup"
	default:
		return "Artifact"
	}
}
