// Package persona provides the static catalog of consultation experts:
// standalone personas and organization members. The registry is pure
// data; behavior lives in the instruction string consumed by the
// completion gateway. Presentation concerns (icons, colors) are not part
// of this model.
package persona

import (
	"fmt"
	"sort"
)

// Persona is a named behavioral profile scoping the backend to a domain
// of expertise. Immutable after registry construction.
type Persona struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	Description string `yaml:"description"`
	Expertise   string `yaml:"expertise"`
	Instruction string `yaml:"instruction"`
	OrgName     string `yaml:"org_name,omitempty"`
}

// Organization groups member personas under a shared identity.
type Organization struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Members     []Persona `yaml:"members"`
}

// Registry is an immutable snapshot of the persona catalog. Reloading a
// catalog file produces a new registry; existing snapshots stay valid.
type Registry struct {
	experts []Persona
	orgs    []Organization
	byID    map[string]Persona
}

// NewRegistry builds a registry from global experts and organizations.
// Org members inherit their organization's name. Duplicate ids are an
// error: threads are keyed by persona id.
func NewRegistry(experts []Persona, orgs []Organization) (*Registry, error) {
	r := &Registry{byID: make(map[string]Persona)}
	add := func(p Persona) error {
		if p.ID == "" {
			return fmt.Errorf("persona %q has no id", p.Name)
		}
		if _, dup := r.byID[p.ID]; dup {
			return fmt.Errorf("duplicate persona id %q", p.ID)
		}
		r.byID[p.ID] = p
		return nil
	}
	for _, p := range experts {
		if err := add(p); err != nil {
			return nil, err
		}
		r.experts = append(r.experts, p)
	}
	for _, org := range orgs {
		members := make([]Persona, len(org.Members))
		for i, m := range org.Members {
			if m.OrgName == "" {
				m.OrgName = org.Name
			}
			if err := add(m); err != nil {
				return nil, err
			}
			members[i] = m
		}
		org.Members = members
		r.orgs = append(r.orgs, org)
	}
	if len(r.byID) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return r, nil
}

// Get looks up a persona by id.
func (r *Registry) Get(id string) (Persona, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// All returns every persona in deterministic order: global experts first,
// then organization members in declaration order.
func (r *Registry) All() []Persona {
	out := make([]Persona, 0, len(r.byID))
	out = append(out, r.experts...)
	for _, org := range r.orgs {
		out = append(out, org.Members...)
	}
	return out
}

// GlobalExperts returns personas with no organization affiliation.
func (r *Registry) GlobalExperts() []Persona {
	out := make([]Persona, len(r.experts))
	copy(out, r.experts)
	return out
}

// Organizations returns the organization catalog.
func (r *Registry) Organizations() []Organization {
	out := make([]Organization, len(r.orgs))
	copy(out, r.orgs)
	return out
}

// IDs returns all persona ids sorted for stable listings.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
