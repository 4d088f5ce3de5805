// Package thread owns per-persona conversation state: the message log,
// the artifact collection, and the active-artifact pointer. The Store is
// the sole mutator; every operation is a pure Thread-to-Thread
// transformation so state transitions can be tested by value comparison.
package thread

import (
	"time"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ArtifactType tags an artifact with its rendering vocabulary.
type ArtifactType string

const (
	ArtifactMermaid ArtifactType = "mermaid"
	ArtifactHTML    ArtifactType = "html"
	ArtifactText    ArtifactType = "text"
)

// Suggestion is an artifact the assistant offered but did not generate.
// It exists only attached to the message that produced it; acting on one
// spawns a new directed turn rather than mutating the suggestion.
type Suggestion struct {
	Type  ArtifactType
	Title string
}

// Message is one turn in a thread. Content is the display string with
// artifact markup and suggestion markers already stripped.
type Message struct {
	Role        Role
	Content     string
	Suggestions []Suggestion
	// GeneratingArtifact marks a user turn that requests directed
	// artifact generation, so the view can label it accordingly.
	GeneratingArtifact bool
	Time               time.Time
}

// Artifact is a generated, renderable object extracted from a backend
// response. Content keeps the fence markers; consumers strip them at the
// edge via the artifact package.
type Artifact struct {
	ID        string
	Type      ArtifactType
	Content   string
	Title     string
	CreatedAt time.Time
}

// Thread is the complete conversation and artifact state for one persona.
// Messages are append-only in chronological order; Artifacts are
// append-only except for user-initiated deletion. ActiveArtifactID is a
// weak reference: it always names an artifact currently present, or is
// empty.
type Thread struct {
	PersonaID        string
	Messages         []Message
	Artifacts        []Artifact
	ActiveArtifactID string
}

// ActiveArtifact resolves the active pointer. The second return is false
// when no artifact is active.
func (t Thread) ActiveArtifact() (Artifact, bool) {
	if t.ActiveArtifactID == "" {
		return Artifact{}, false
	}
	for _, a := range t.Artifacts {
		if a.ID == t.ActiveArtifactID {
			return a, true
		}
	}
	return Artifact{}, false
}

// artifactIndex returns the position of id in the collection, or -1.
func (t Thread) artifactIndex(id string) int {
	for i, a := range t.Artifacts {
		if a.ID == id {
			return i
		}
	}
	return -1
}
