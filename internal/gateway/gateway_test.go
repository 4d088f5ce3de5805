package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/goleak"

	"consult/internal/persona"
	"consult/internal/thread"
)

func TestMain(m *testing.M) {
	// opencensus starts a worker goroutine in package init that can
	// never be stopped; it is not a leak in this package.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func testPersona() persona.Persona {
	return persona.Persona{
		ID:          "arch",
		Name:        "Evelyn Vane",
		Role:        "Software Architect",
		Expertise:   "System Design",
		Instruction: "You are Evelyn Vane.",
	}
}

func TestConsultUsesInstructionAsSystemPrompt(t *testing.T) {
	mock := NewMockClient()
	mock.Enqueue("Sounds reasonable.", nil)
	g := New(mock)

	got, err := g.Consult(context.Background(), testPersona(), nil, "hello")
	if err != nil {
		t.Fatalf("Consult: %v", err)
	}
	if got != "Sounds reasonable." {
		t.Fatalf("response = %q", got)
	}
	if mock.LastSystemPrompt() != "You are Evelyn Vane." {
		t.Fatalf("system prompt = %q", mock.LastSystemPrompt())
	}
}

func TestConsultWrapsFailuresAsBackendError(t *testing.T) {
	mock := NewMockClient()
	mock.Enqueue("", errors.New("quota exceeded"))
	g := New(mock)

	_, err := g.Consult(context.Background(), testPersona(), nil, "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsBackendError(err) {
		t.Fatalf("error not a BackendError: %v", err)
	}
	var be *BackendError
	if !errors.As(err, &be) || be.Op != "consult" {
		t.Fatalf("op = %q, want consult", be.Op)
	}
}

func TestGenerateArtifactWrapsFailures(t *testing.T) {
	mock := NewMockClient()
	mock.Enqueue("", errors.New("network down"))
	g := New(mock)

	_, err := g.GenerateArtifact(context.Background(), testPersona(), thread.Suggestion{Type: thread.ArtifactHTML, Title: "Mockup"})
	var be *BackendError
	if !errors.As(err, &be) || be.Op != "generate" {
		t.Fatalf("err = %v, want generate BackendError", err)
	}
}

func TestGeminiClientRequiresAPIKey(t *testing.T) {
	c := NewGeminiClient(GeminiConfig{})
	if _, err := c.Complete(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestMockClientCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMockClient().Complete(ctx, "", "x"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestMockClientKeyedResponses(t *testing.T) {
	mock := NewMockClient()
	mock.RespondWhenContains("org chart", "```mermaid\ngraph TD\n```")

	got, err := mock.Complete(context.Background(), "", fmt.Sprintf("User: %s", "Show me the org chart"))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "```mermaid\ngraph TD\n```" {
		t.Fatalf("response = %q", got)
	}
}
