package gateway

import (
	"context"
	"time"

	"consult/internal/logging"
	"consult/internal/persona"
	"consult/internal/thread"
)

// Gateway composes prompts and normalizes backend results. Failures come
// back as *BackendError; the thread is never modified here, so a failed
// turn leaves state exactly as it was after the user's message.
type Gateway struct {
	client Client
}

// New creates a gateway over a provider client.
func New(client Client) *Gateway {
	return &Gateway{client: client}
}

// Consult runs a conversational turn for a persona. The persona's
// instruction string is the system prompt; history is the thread's
// message log up to and including the new user turn.
func (g *Gateway) Consult(ctx context.Context, p persona.Persona, history []thread.Message, userText string) (string, error) {
	start := time.Now()
	prompt := BuildConversationalPrompt(p, history, userText)

	raw, err := g.client.Complete(ctx, p.Instruction, prompt)
	if err != nil {
		logging.GatewayError("consult persona=%s failed after %v: %v", p.ID, time.Since(start), err)
		return "", &BackendError{Op: "consult", Err: err}
	}
	logging.Gateway("consult persona=%s completed in %v response_len=%d", p.ID, time.Since(start), len(raw))
	return raw, nil
}

// GenerateArtifact runs a directed-artifact turn for a suggestion the
// user acted on. Responses are treated as artifact-only downstream.
func (g *Gateway) GenerateArtifact(ctx context.Context, p persona.Persona, s thread.Suggestion) (string, error) {
	start := time.Now()
	prompt := BuildDirectedPrompt(p, s)

	raw, err := g.client.Complete(ctx, p.Instruction, prompt)
	if err != nil {
		logging.GatewayError("generate persona=%s title=%q failed after %v: %v", p.ID, s.Title, time.Since(start), err)
		return "", &BackendError{Op: "generate", Err: err}
	}
	logging.Gateway("generate persona=%s title=%q completed in %v", p.ID, s.Title, time.Since(start))
	return raw, nil
}
