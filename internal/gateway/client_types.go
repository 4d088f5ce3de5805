// Package gateway builds outbound prompts and talks to the text
// completion backend. It is the only package that knows about providers;
// everything above it sees raw response text or a *BackendError.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client defines the interface for completion providers.
type Client interface {
	// Complete sends a system prompt and user prompt, returning the raw
	// completion text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// SetModel changes the model used for subsequent completions.
	SetModel(model string)

	// GetModel returns the current model.
	GetModel() string
}

// Provider identifies a completion backend implementation.
type Provider string

const (
	ProviderGemini Provider = "gemini" // raw REST generateContent
	ProviderGenAI  Provider = "genai"  // official SDK
	ProviderMock   Provider = "mock"   // canned responses
)

// GeminiConfig holds configuration for the Gemini REST client.
type GeminiConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	Temperature     float64
	MaxOutputTokens int
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:          apiKey,
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Model:           "gemini-3-pro-preview",
		Timeout:         2 * time.Minute,
		Temperature:     0.7,
		MaxOutputTokens: 8192,
	}
}

// BackendError is the single failure type surfaced to callers. It covers
// transport, quota, and malformed-response conditions; the UI renders it
// as a neutral failure and must clear loading state on every path.
type BackendError struct {
	Op  string // "consult" or "generate"
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// IsBackendError reports whether err is (or wraps) a BackendError.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// Wire types for the Gemini generateContent REST API.

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
