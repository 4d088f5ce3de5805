package thread

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store holds one thread per registered persona. It is not
// concurrency-aware: the event loop dispatches operations sequentially,
// and in-flight back-pressure is enforced by the caller's loading flag.
type Store struct {
	threads map[string]Thread
	order   []string
}

// greeting is the seeded assistant message for a fresh thread.
func greeting(name, orgName, expertise string) string {
	from := ""
	if orgName != "" {
		from = fmt.Sprintf(" from **%s**", orgName)
	}
	return fmt.Sprintf("Expert Consultation initialized: **%s**%s. I'm ready to provide high-level %s insights. How can I assist you in achieving your project goals today?", name, from, expertise)
}

// Seed describes a persona the store creates a thread for.
type Seed struct {
	PersonaID string
	Name      string
	OrgName   string
	Expertise string
}

// NewStore creates a store with one greeted thread per seed. Threads are
// never lazily created or deleted afterwards.
func NewStore(seeds []Seed) *Store {
	s := &Store{threads: make(map[string]Thread, len(seeds))}
	for _, seed := range seeds {
		s.ensure(seed)
	}
	return s
}

func (s *Store) ensure(seed Seed) {
	if _, ok := s.threads[seed.PersonaID]; ok {
		return
	}
	s.threads[seed.PersonaID] = Thread{
		PersonaID: seed.PersonaID,
		Messages: []Message{{
			Role:    RoleAssistant,
			Content: greeting(seed.Name, seed.OrgName, seed.Expertise),
			Time:    time.Now(),
		}},
	}
	s.order = append(s.order, seed.PersonaID)
}

// AddPersonas registers threads for personas that appeared after a
// catalog reload. Existing threads are left untouched.
func (s *Store) AddPersonas(seeds []Seed) {
	for _, seed := range seeds {
		s.ensure(seed)
	}
}

// Get returns the thread for a persona id. The boolean is false for
// unregistered personas.
func (s *Store) Get(personaID string) (Thread, bool) {
	t, ok := s.threads[personaID]
	return t, ok
}

// PersonaIDs returns registered persona ids in registration order.
func (s *Store) PersonaIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// AppendUserTurn appends a user message. Blank text is a no-op; the
// returned boolean reports whether a message was appended.
func (s *Store) AppendUserTurn(personaID, text string) bool {
	return s.appendUser(personaID, text, false)
}

// AppendDirectedTurn appends a user message flagged as a directed
// artifact-generation request.
func (s *Store) AppendDirectedTurn(personaID, text string) bool {
	return s.appendUser(personaID, text, true)
}

func (s *Store) appendUser(personaID, text string, directed bool) bool {
	t, ok := s.threads[personaID]
	if !ok || strings.TrimSpace(text) == "" {
		return false
	}
	next := t
	next.Messages = append(append([]Message(nil), t.Messages...), Message{
		Role:               RoleUser,
		Content:            text,
		GeneratingArtifact: directed,
		Time:               time.Now(),
	})
	s.threads[personaID] = next
	return true
}

// NewArtifact mints an artifact value with a collision-resistant id.
func NewArtifact(typ ArtifactType, content, title string) Artifact {
	return Artifact{
		ID:        uuid.NewString(),
		Type:      typ,
		Content:   content,
		Title:     title,
		CreatedAt: time.Now(),
	}
}

// CommitAssistantTurn appends an assistant message, appends any new
// artifacts, and when artifacts were produced repoints the active
// pointer to the last of them. Without new artifacts the pointer is left
// untouched.
func (s *Store) CommitAssistantTurn(personaID, display string, suggestions []Suggestion, artifacts []Artifact) {
	t, ok := s.threads[personaID]
	if !ok {
		return
	}
	msg := Message{Role: RoleAssistant, Content: display, Time: time.Now()}
	if len(suggestions) > 0 {
		msg.Suggestions = append([]Suggestion(nil), suggestions...)
	}
	next := t
	next.Messages = append(append([]Message(nil), t.Messages...), msg)
	if len(artifacts) > 0 {
		next.Artifacts = append(append([]Artifact(nil), t.Artifacts...), artifacts...)
		next.ActiveArtifactID = artifacts[len(artifacts)-1].ID
	}
	s.threads[personaID] = next
}

// DeleteArtifact removes an artifact. When the active artifact is
// deleted the pointer moves to the first remaining artifact in insertion
// order, or clears when the collection is empty. The pointer is never
// left dangling.
func (s *Store) DeleteArtifact(personaID, artifactID string) {
	t, ok := s.threads[personaID]
	if !ok {
		return
	}
	idx := t.artifactIndex(artifactID)
	if idx < 0 {
		return
	}
	next := t
	remaining := make([]Artifact, 0, len(t.Artifacts)-1)
	remaining = append(remaining, t.Artifacts[:idx]...)
	remaining = append(remaining, t.Artifacts[idx+1:]...)
	next.Artifacts = remaining
	if t.ActiveArtifactID == artifactID {
		if len(remaining) > 0 {
			next.ActiveArtifactID = remaining[0].ID
		} else {
			next.ActiveArtifactID = ""
		}
	}
	s.threads[personaID] = next
}

// SetActiveArtifact repoints the active pointer. Unknown ids are a no-op
// so the pointer can never be set to something outside the collection.
func (s *Store) SetActiveArtifact(personaID, artifactID string) {
	t, ok := s.threads[personaID]
	if !ok {
		return
	}
	if t.artifactIndex(artifactID) < 0 {
		return
	}
	next := t
	next.ActiveArtifactID = artifactID
	s.threads[personaID] = next
}
