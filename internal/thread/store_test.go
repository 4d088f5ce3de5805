package thread

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func testSeeds() []Seed {
	return []Seed{
		{PersonaID: "arch", Name: "Evelyn Vane", Expertise: "System Design"},
		{PersonaID: "mkt", Name: "Seraphina Quinn", Expertise: "Growth Marketing"},
	}
}

// ignoreTimes strips non-deterministic fields from Thread comparisons.
var ignoreTimes = cmpopts.IgnoreFields(Message{}, "Time")

func TestNewStoreSeedsEveryPersona(t *testing.T) {
	s := NewStore(testSeeds())

	ids := s.PersonaIDs()
	if diff := cmp.Diff([]string{"arch", "mkt"}, ids); diff != "" {
		t.Fatalf("persona ids mismatch (-want +got):\n%s", diff)
	}
	for _, id := range ids {
		th, ok := s.Get(id)
		if !ok {
			t.Fatalf("thread missing for %s", id)
		}
		if len(th.Messages) != 1 || th.Messages[0].Role != RoleAssistant {
			t.Fatalf("thread %s not seeded with greeting: %+v", id, th.Messages)
		}
	}
}

func TestAppendUserTurnBlankIsNoop(t *testing.T) {
	s := NewStore(testSeeds())
	before, _ := s.Get("arch")

	if s.AppendUserTurn("arch", "   \n\t") {
		t.Fatal("blank text should not append")
	}
	after, _ := s.Get("arch")
	if diff := cmp.Diff(before, after, ignoreTimes); diff != "" {
		t.Fatalf("thread changed on blank append (-before +after):\n%s", diff)
	}
}

func TestAppendUserTurnUnknownPersona(t *testing.T) {
	s := NewStore(testSeeds())
	if s.AppendUserTurn("ghost", "hello") {
		t.Fatal("unknown persona should not append")
	}
}

func TestCommitAssistantTurnRepointsToLastArtifact(t *testing.T) {
	s := NewStore(testSeeds())
	s.AppendUserTurn("arch", "draw me a diagram")

	a := NewArtifact(ArtifactMermaid, "```mermaid\ngraph TD\n```", "First")
	b := NewArtifact(ArtifactHTML, "```html\n<div/>\n```", "Second")
	s.CommitAssistantTurn("arch", "done", nil, []Artifact{a, b})

	th, _ := s.Get("arch")
	if th.ActiveArtifactID != b.ID {
		t.Fatalf("active = %q, want last new artifact %q", th.ActiveArtifactID, b.ID)
	}
	if len(th.Artifacts) != 2 {
		t.Fatalf("artifact count = %d, want 2", len(th.Artifacts))
	}

	// A later commit without artifacts leaves the pointer untouched.
	s.CommitAssistantTurn("arch", "just chatting", nil, nil)
	th, _ = s.Get("arch")
	if th.ActiveArtifactID != b.ID {
		t.Fatalf("active moved on artifact-less commit: %q", th.ActiveArtifactID)
	}
}

func TestCommitAssistantTurnCopiesSuggestions(t *testing.T) {
	s := NewStore(testSeeds())
	sugs := []Suggestion{{Type: ArtifactMermaid, Title: "Topology"}}
	s.CommitAssistantTurn("arch", "I can draw that.", sugs, nil)

	th, _ := s.Get("arch")
	last := th.Messages[len(th.Messages)-1]
	want := []Suggestion{{Type: ArtifactMermaid, Title: "Topology"}}
	if diff := cmp.Diff(want, last.Suggestions); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}

	// Mutating the caller's slice must not reach the stored thread.
	sugs[0].Title = "changed"
	th, _ = s.Get("arch")
	if th.Messages[len(th.Messages)-1].Suggestions[0].Title != "Topology" {
		t.Fatal("stored suggestions alias the caller's slice")
	}
}

func TestDeleteActiveRepointsToFirstRemaining(t *testing.T) {
	s := NewStore(testSeeds())
	a := NewArtifact(ArtifactMermaid, "```mermaid\nA\n```", "A")
	b := NewArtifact(ArtifactMermaid, "```mermaid\nB\n```", "B")
	c := NewArtifact(ArtifactMermaid, "```mermaid\nC\n```", "C")
	s.CommitAssistantTurn("arch", "", nil, []Artifact{a, b, c})
	s.SetActiveArtifact("arch", b.ID)

	s.DeleteArtifact("arch", b.ID)

	th, _ := s.Get("arch")
	if th.ActiveArtifactID != a.ID {
		t.Fatalf("active = %q, want first remaining %q", th.ActiveArtifactID, a.ID)
	}
	if got, ok := th.ActiveArtifact(); !ok || got.ID != a.ID {
		t.Fatalf("ActiveArtifact() = %+v, %v", got, ok)
	}
}

func TestDeleteOnlyArtifactClearsPointer(t *testing.T) {
	s := NewStore(testSeeds())
	a := NewArtifact(ArtifactHTML, "```html\n<p/>\n```", "Solo")
	s.CommitAssistantTurn("arch", "", nil, []Artifact{a})

	s.DeleteArtifact("arch", a.ID)

	th, _ := s.Get("arch")
	if th.ActiveArtifactID != "" {
		t.Fatalf("active = %q, want empty", th.ActiveArtifactID)
	}
	if _, ok := th.ActiveArtifact(); ok {
		t.Fatal("ActiveArtifact() resolved after deleting the only artifact")
	}
}

func TestDeleteInactiveLeavesPointer(t *testing.T) {
	s := NewStore(testSeeds())
	a := NewArtifact(ArtifactMermaid, "x", "A")
	b := NewArtifact(ArtifactMermaid, "y", "B")
	s.CommitAssistantTurn("arch", "", nil, []Artifact{a, b})

	s.DeleteArtifact("arch", a.ID)

	th, _ := s.Get("arch")
	if th.ActiveArtifactID != b.ID {
		t.Fatalf("active = %q, want %q", th.ActiveArtifactID, b.ID)
	}
}

func TestSetActiveArtifactUnknownIDIsNoop(t *testing.T) {
	s := NewStore(testSeeds())
	a := NewArtifact(ArtifactMermaid, "x", "A")
	s.CommitAssistantTurn("arch", "", nil, []Artifact{a})

	s.SetActiveArtifact("arch", "no-such-id")

	th, _ := s.Get("arch")
	if th.ActiveArtifactID != a.ID {
		t.Fatalf("active = %q, want %q", th.ActiveArtifactID, a.ID)
	}
}

// The active pointer must never dangle, whatever sequence of deletions
// runs. Exercise every deletion order over a three-artifact thread.
func TestActivePointerNeverDangles(t *testing.T) {
	orders := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, order := range orders {
		s := NewStore(testSeeds())
		arts := []Artifact{
			NewArtifact(ArtifactMermaid, "a", "A"),
			NewArtifact(ArtifactHTML, "b", "B"),
			NewArtifact(ArtifactText, "c", "C"),
		}
		s.CommitAssistantTurn("arch", "", nil, arts)

		for _, i := range order {
			s.DeleteArtifact("arch", arts[i].ID)
			th, _ := s.Get("arch")
			if th.ActiveArtifactID == "" {
				continue
			}
			if _, ok := th.ActiveArtifact(); !ok {
				t.Fatalf("order %v: dangling active pointer %q", order, th.ActiveArtifactID)
			}
		}
	}
}

func TestThreadsAreIndependent(t *testing.T) {
	s := NewStore(testSeeds())
	s.AppendUserTurn("arch", "hi arch")

	mkt, _ := s.Get("mkt")
	if len(mkt.Messages) != 1 {
		t.Fatalf("mkt thread gained messages: %d", len(mkt.Messages))
	}
}

func TestAddPersonasKeepsExistingThreads(t *testing.T) {
	s := NewStore(testSeeds())
	s.AppendUserTurn("arch", "hello")
	before, _ := s.Get("arch")

	s.AddPersonas([]Seed{
		{PersonaID: "arch", Name: "Replaced", Expertise: "Nope"},
		{PersonaID: "sec", Name: "Sloane Vance", Expertise: "Security"},
	})

	after, _ := s.Get("arch")
	if diff := cmp.Diff(before, after, ignoreTimes); diff != "" {
		t.Fatalf("existing thread changed on reload (-before +after):\n%s", diff)
	}
	if _, ok := s.Get("sec"); !ok {
		t.Fatal("new persona thread missing")
	}
}
