package persona

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinRegistryShape(t *testing.T) {
	r := BuiltinRegistry()

	if got := len(r.GlobalExperts()); got != 6 {
		t.Fatalf("global experts = %d, want 6", got)
	}
	if got := len(r.Organizations()); got != 2 {
		t.Fatalf("organizations = %d, want 2", got)
	}
	if got := len(r.All()); got != 10 {
		t.Fatalf("total personas = %d, want 10", got)
	}

	// Deterministic order: experts first, then org members.
	all := r.All()
	if all[0].ID != "corp" || all[6].ID != "nexus-ceo" {
		t.Fatalf("ordering wrong: first=%s seventh=%s", all[0].ID, all[6].ID)
	}
}

func TestOrgMembersInheritOrgName(t *testing.T) {
	r := BuiltinRegistry()
	p, ok := r.Get("veridian-cso")
	if !ok {
		t.Fatal("veridian-cso missing")
	}
	if p.OrgName != "Veridian Systems" {
		t.Fatalf("org name = %q, want Veridian Systems", p.OrgName)
	}

	expert, _ := r.Get("arch")
	if expert.OrgName != "" {
		t.Fatalf("global expert has org name %q", expert.OrgName)
	}
}

func TestEveryBuiltinCarriesSuggestionProtocol(t *testing.T) {
	for _, p := range BuiltinRegistry().All() {
		if !strings.Contains(p.Instruction, "[SUGGEST: type | title]") {
			t.Fatalf("persona %s instruction lacks the suggestion protocol", p.ID)
		}
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	dup := []Persona{
		{ID: "x", Name: "One", Instruction: "a"},
		{ID: "x", Name: "Two", Instruction: "b"},
	}
	if _, err := NewRegistry(dup, nil); err == nil {
		t.Fatal("duplicate ids accepted")
	}
}

func TestNewRegistryRejectsEmptyCatalog(t *testing.T) {
	if _, err := NewRegistry(nil, nil); err == nil {
		t.Fatal("empty catalog accepted")
	}
}

func TestLoadCatalogYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personas.yaml")
	doc := `
experts:
  - id: law
    name: Ada Quill
    role: General Counsel
    expertise: Contract Law
    instruction: "You are Ada Quill."
organizations:
  - id: helix
    name: Helix Labs
    members:
      - id: helix-cso
        name: Rue Tanaka
        role: Chief Science Officer
        expertise: Genomics
        instruction: "You are Rue Tanaka."
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	r, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(r.All()) != 2 {
		t.Fatalf("personas = %d, want 2", len(r.All()))
	}
	m, ok := r.Get("helix-cso")
	if !ok {
		t.Fatal("helix-cso missing")
	}
	if m.OrgName != "Helix Labs" {
		t.Fatalf("org name = %q, want Helix Labs", m.OrgName)
	}
}

func TestLoadOrBuiltinFallsBack(t *testing.T) {
	r, err := LoadOrBuiltin("")
	if err != nil {
		t.Fatalf("LoadOrBuiltin empty path: %v", err)
	}
	if len(r.All()) != 10 {
		t.Fatalf("expected builtin catalog, got %d personas", len(r.All()))
	}

	r, err = LoadOrBuiltin(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrBuiltin missing file: %v", err)
	}
	if len(r.All()) != 10 {
		t.Fatalf("expected builtin fallback, got %d personas", len(r.All()))
	}
}
