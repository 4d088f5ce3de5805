// Package chat provides the interactive consultation TUI. The
// functionality is split across files:
//   - model.go: model types, construction, Init
//   - update.go: the event loop
//   - process.go: background turn processing
//   - commands.go: /command handling
//   - view.go: rendering
package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"consult/cmd/consult/ui"
	"consult/internal/config"
	"consult/internal/diagram"
	"consult/internal/gateway"
	"consult/internal/parser"
	"consult/internal/persona"
	"consult/internal/thread"
)

// Config wires the chat model to its collaborators.
type Config struct {
	App      config.Config
	Registry *persona.Registry
	Gateway  *gateway.Gateway

	// Engine previews artifacts in a browser. Optional; /open reports
	// a notice when absent.
	Engine *diagram.BrowserEngine

	// CatalogUpdates delivers reloaded persona registries. Optional.
	CatalogUpdates <-chan *persona.Registry
}

// personaItem adapts a persona for the picker list.
type personaItem struct {
	p persona.Persona
}

func (i personaItem) Title() string {
	if i.p.OrgName != "" {
		return fmt.Sprintf("%s · %s", i.p.Name, i.p.OrgName)
	}
	return i.p.Name
}
func (i personaItem) Description() string { return i.p.Role + " — " + i.p.Description }
func (i personaItem) FilterValue() string { return i.p.Name + " " + i.p.Role + " " + i.p.OrgName }

// Model is the bubbletea model for the consultation interface.
type Model struct {
	// UI components
	textarea    textarea.Model
	viewport    viewport.Model
	spinner     spinner.Model
	personaList list.Model
	styles      ui.Styles
	renderer    *glamour.TermRenderer

	splitPane *ui.SplitPane
	workspace ui.WorkspacePane

	// Collaborators
	store    *thread.Store
	registry *persona.Registry
	gw       *gateway.Gateway
	engine   *diagram.BrowserEngine
	appCfg   config.Config

	catalogUpdates <-chan *persona.Registry

	// State
	activeID   string
	loading    map[string]bool
	notice     string
	err        error
	width      int
	height     int
	ready      bool
	showPicker bool
	showHelp   bool
}

// seedsFor converts a registry to thread seeds in catalog order.
func seedsFor(reg *persona.Registry) []thread.Seed {
	personas := reg.All()
	seeds := make([]thread.Seed, len(personas))
	for i, p := range personas {
		seeds[i] = thread.Seed{
			PersonaID: p.ID,
			Name:      p.Name,
			OrgName:   p.OrgName,
			Expertise: p.Expertise,
		}
	}
	return seeds
}

func pickerItems(reg *persona.Registry) []list.Item {
	personas := reg.All()
	items := make([]list.Item, len(personas))
	for i, p := range personas {
		items[i] = personaItem{p: p}
	}
	return items
}

// New builds the chat model. The first catalog persona starts focused.
func New(cfg Config) Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.App.UI.Theme))

	ta := textarea.New()
	ta.Placeholder = "Consult the expert... (Enter to send, Alt+Enter for newline)"
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.Spinner

	pl := list.New(pickerItems(cfg.Registry), list.NewDefaultDelegate(), 0, 0)
	pl.Title = "Choose an expert"
	pl.SetShowStatusBar(false)

	split := ui.NewSplitPane(styles)
	if cfg.App.UI.SplitView {
		split.SetMode(ui.ModeSplit)
	}

	store := thread.NewStore(seedsFor(cfg.Registry))

	activeID := ""
	if all := cfg.Registry.All(); len(all) > 0 {
		activeID = all[0].ID
	}

	return Model{
		textarea:       ta,
		spinner:        sp,
		personaList:    pl,
		styles:         styles,
		splitPane:      split,
		workspace:      ui.NewWorkspacePane(styles, 0, 0),
		store:          store,
		registry:       cfg.Registry,
		gw:             cfg.Gateway,
		engine:         cfg.Engine,
		appCfg:         cfg.App,
		catalogUpdates: cfg.CatalogUpdates,
		activeID:       activeID,
		loading:        make(map[string]bool),
	}
}

// activePersona resolves the focused persona.
func (m Model) activePersona() (persona.Persona, bool) {
	return m.registry.Get(m.activeID)
}

// activeThread returns the focused persona's thread.
func (m Model) activeThread() thread.Thread {
	t, _ := m.store.Get(m.activeID)
	return t
}

// lastSuggestions returns the suggestions of the most recent assistant
// message in the focused thread.
func (m Model) lastSuggestions() []thread.Suggestion {
	msgs := m.activeThread().Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == thread.RoleAssistant {
			return msgs[i].Suggestions
		}
	}
	return nil
}

// Messages for tea updates.
type (
	// turnResultMsg carries a completed backend turn. PersonaID names
	// the thread the turn belongs to, which may no longer be focused.
	turnResultMsg struct {
		personaID  string
		result     parser.Result
		directed   bool
		suggestion thread.Suggestion
		err        error
	}

	noticeMsg  string
	catalogMsg *persona.Registry
)

// waitForCatalog blocks on the reload channel, if one was provided.
func (m Model) waitForCatalog() tea.Cmd {
	if m.catalogUpdates == nil {
		return nil
	}
	ch := m.catalogUpdates
	return func() tea.Msg {
		reg, ok := <-ch
		if !ok {
			return nil
		}
		return catalogMsg(reg)
	}
}

// Init starts the input blink, the spinner, and the catalog listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.waitForCatalog(),
	)
}

// Shutdown releases resources. Safe to call with a nil engine.
func (m Model) Shutdown() {
	if m.engine != nil {
		_ = m.engine.Close()
	}
}

// Run starts the interactive program.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
