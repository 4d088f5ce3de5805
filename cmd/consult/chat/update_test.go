package chat

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"consult/internal/config"
	"consult/internal/gateway"
	"consult/internal/parser"
	"consult/internal/persona"
	"consult/internal/thread"
)

func newTestModel(t *testing.T, mock *gateway.MockClient) Model {
	t.Helper()
	reg := persona.BuiltinRegistry()
	m := New(Config{
		App:      *config.Default(),
		Registry: reg,
		Gateway:  gateway.New(mock),
	})
	// Simulate the first window size so the model is ready.
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

// drive runs a command and feeds its message back through Update.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if msg == nil {
		return m
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drive(t, m, c)
		}
		return m
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func submit(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(text)
	next, cmd := m.handleSubmit()
	return next.(Model), cmd
}

func TestEveryThreadStartsGreeted(t *testing.T) {
	m := newTestModel(t, gateway.NewMockClient())
	for _, id := range m.store.PersonaIDs() {
		th, ok := m.store.Get(id)
		if !ok || len(th.Messages) != 1 {
			t.Fatalf("thread %s not seeded: %+v", id, th)
		}
		if th.Messages[0].Role != thread.RoleAssistant {
			t.Fatalf("thread %s greeting role = %s", id, th.Messages[0].Role)
		}
	}
}

func TestTurnCommitsToOriginatingThread(t *testing.T) {
	mock := gateway.NewMockClient()
	mock.Enqueue("Consider a layered approach.", nil)
	m := newTestModel(t, mock)

	origin := m.activeID
	m, cmd := submit(t, m, "How should I structure the service?")
	if !m.loading[origin] {
		t.Fatal("submit did not mark the originating persona loading")
	}

	// The user switches experts while the call is in flight.
	other := m.store.PersonaIDs()[1]
	next, _ := m.switchPersona(other)
	m = next.(Model)

	m = drive(t, m, cmd)

	originThread, _ := m.store.Get(origin)
	last := originThread.Messages[len(originThread.Messages)-1]
	if last.Role != thread.RoleAssistant || last.Content != "Consider a layered approach." {
		t.Fatalf("origin thread last message = %+v", last)
	}
	if m.loading[origin] {
		t.Fatal("loading flag not cleared on the originating persona")
	}

	otherThread, _ := m.store.Get(other)
	if len(otherThread.Messages) != 1 {
		t.Fatalf("focused thread received the reply: %d messages", len(otherThread.Messages))
	}
}

func TestFailedTurnLeavesThreadUntouched(t *testing.T) {
	mock := gateway.NewMockClient()
	mock.Enqueue("", errors.New("backend unavailable"))
	m := newTestModel(t, mock)

	origin := m.activeID
	m, cmd := submit(t, m, "Hello?")
	before, _ := m.store.Get(origin)

	m = drive(t, m, cmd)

	after, _ := m.store.Get(origin)
	if len(after.Messages) != len(before.Messages) {
		t.Fatalf("failed turn changed the thread: %d -> %d messages", len(before.Messages), len(after.Messages))
	}
	if after.Messages[len(after.Messages)-1].Role != thread.RoleUser {
		t.Fatal("user message was not preserved")
	}
	if m.loading[origin] {
		t.Fatal("loading flag stuck after failure")
	}
	if m.notice == "" {
		t.Fatal("no failure notice shown")
	}
}

func TestSubmitBlockedWhileLoading(t *testing.T) {
	m := newTestModel(t, gateway.NewMockClient())
	m.loading[m.activeID] = true

	before, _ := m.store.Get(m.activeID)
	m, cmd := submit(t, m, "second question")
	if cmd != nil {
		t.Fatal("submit dispatched while loading")
	}
	after, _ := m.store.Get(m.activeID)
	if len(after.Messages) != len(before.Messages) {
		t.Fatal("message appended while loading")
	}
}

func TestDirectedGenerationEndToEnd(t *testing.T) {
	mock := gateway.NewMockClient()
	mock.Enqueue("A diagram would help here. [SUGGEST: mermaid | Service Topology]", nil)
	mock.Enqueue("Here you go.\n```mermaid\ngraph TD\n  A --> B\n```", nil)
	m := newTestModel(t, mock)

	origin := m.activeID
	m, cmd := submit(t, m, "Sketch the architecture?")
	m = drive(t, m, cmd)

	suggestions := m.lastSuggestions()
	if len(suggestions) != 1 || suggestions[0].Title != "Service Topology" {
		t.Fatalf("suggestions = %+v", suggestions)
	}

	next, cmd := m.triggerSuggestion(0)
	m = drive(t, next.(Model), cmd)

	th, _ := m.store.Get(origin)
	if len(th.Artifacts) != 1 {
		t.Fatalf("artifacts = %d, want 1", len(th.Artifacts))
	}
	a := th.Artifacts[0]
	if a.Title != "Service Topology" || a.Type != thread.ArtifactMermaid {
		t.Fatalf("artifact = %+v", a)
	}
	if th.ActiveArtifactID != a.ID {
		t.Fatal("active pointer not set to the generated artifact")
	}

	// Directed turns record the request and acknowledge artifact-only.
	msgs := th.Messages
	if !msgs[len(msgs)-2].GeneratingArtifact {
		t.Fatal("directed request not flagged")
	}
	if msgs[len(msgs)-1].Content != parser.ArtifactAck {
		t.Fatalf("directed reply = %q, want acknowledgement", msgs[len(msgs)-1].Content)
	}
	if len(msgs[len(msgs)-1].Suggestions) != 0 {
		t.Fatal("directed reply kept suggestions")
	}
}

func TestDirectedTurnWithoutArtifact(t *testing.T) {
	mock := gateway.NewMockClient()
	mock.Enqueue("Let me suggest something. [SUGGEST: html | Landing Hero]", nil)
	mock.Enqueue("I cannot do that right now.", nil)
	m := newTestModel(t, mock)

	origin := m.activeID
	m, cmd := submit(t, m, "Mock up the landing page?")
	m = drive(t, m, cmd)

	next, cmd := m.triggerSuggestion(0)
	m = drive(t, next.(Model), cmd)

	th, _ := m.store.Get(origin)
	if len(th.Artifacts) != 0 {
		t.Fatalf("artifacts = %d, want 0", len(th.Artifacts))
	}
	last := th.Messages[len(th.Messages)-1]
	if !strings.Contains(last.Content, "could not produce") {
		t.Fatalf("missing failure message: %q", last.Content)
	}
}

func TestSlashCommandDelete(t *testing.T) {
	mock := gateway.NewMockClient()
	mock.Enqueue("```mermaid\ngraph TD\n  A --> B\n```", nil)
	m := newTestModel(t, mock)

	origin := m.activeID
	m, cmd := submit(t, m, "Draw it.")
	m = drive(t, m, cmd)

	th, _ := m.store.Get(origin)
	if len(th.Artifacts) != 1 {
		t.Fatalf("artifacts = %d, want 1", len(th.Artifacts))
	}

	next, _ := m.handleCommand("/delete")
	m = next.(Model)

	th, _ = m.store.Get(origin)
	if len(th.Artifacts) != 0 || th.ActiveArtifactID != "" {
		t.Fatalf("delete left %d artifacts, active %q", len(th.Artifacts), th.ActiveArtifactID)
	}
}

func TestSlashCommandDeleteByIndex(t *testing.T) {
	mock := gateway.NewMockClient()
	mock.Enqueue("```mermaid\ngraph TD\n  A --> B\n```", nil)
	mock.Enqueue("```html\n<p>Second</p>\n```", nil)
	m := newTestModel(t, mock)

	origin := m.activeID
	m, cmd := submit(t, m, "Draw it.")
	m = drive(t, m, cmd)
	m, cmd = submit(t, m, "Mock it up.")
	m = drive(t, m, cmd)

	th, _ := m.store.Get(origin)
	if len(th.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(th.Artifacts))
	}
	first := th.Artifacts[0].ID

	next, _ := m.handleCommand("/delete 2")
	m = next.(Model)

	th, _ = m.store.Get(origin)
	if len(th.Artifacts) != 1 || th.Artifacts[0].ID != first {
		t.Fatalf("delete 2 left wrong artifacts: %+v", th.Artifacts)
	}

	next, _ = m.handleCommand("/delete 5")
	m = next.(Model)
	if m.notice != "Usage: /delete [n]" {
		t.Fatalf("out-of-range delete notice = %q", m.notice)
	}
	th, _ = m.store.Get(origin)
	if len(th.Artifacts) != 1 {
		t.Fatalf("out-of-range delete removed an artifact")
	}
}

func TestSlashCommandArtifacts(t *testing.T) {
	mock := gateway.NewMockClient()
	mock.Enqueue("```mermaid\ngraph TD\n  A --> B\n```", nil)
	m := newTestModel(t, mock)

	next, _ := m.handleCommand("/artifacts")
	m = next.(Model)
	if m.notice != "No artifacts in this thread." {
		t.Fatalf("empty-thread notice = %q", m.notice)
	}

	m, cmd := submit(t, m, "Draw it.")
	m = drive(t, m, cmd)

	next, _ = m.handleCommand("/artifacts")
	m = next.(Model)
	if !strings.Contains(m.notice, "1* Mermaid Diagram") {
		t.Fatalf("artifact listing = %q", m.notice)
	}
}

func TestCatalogReloadKeepsThreads(t *testing.T) {
	m := newTestModel(t, gateway.NewMockClient())
	origin := m.activeID

	m.store.AppendUserTurn(origin, "remember me")

	extra := persona.Persona{
		ID: "late-arrival", Name: "Late Arrival", Role: "Consultant",
		Expertise: "testing", Instruction: "You are a consultant.",
	}
	experts := append(m.registry.GlobalExperts(), extra)
	reg, err := persona.NewRegistry(experts, m.registry.Organizations())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	next, _ := m.applyCatalog(catalogMsg(reg))
	m = next.(Model)

	th, ok := m.store.Get(origin)
	if !ok || len(th.Messages) != 2 {
		t.Fatalf("reload dropped existing thread: %+v", th)
	}
	if _, ok := m.store.Get("late-arrival"); !ok {
		t.Fatal("reload did not seed the new persona's thread")
	}
}
