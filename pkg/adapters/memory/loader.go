package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/afterglow/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Layout is the on-disk shape of a catalog (layout.yaml / layout.json).
type Layout struct {
	States      []*domain.State      `yaml:"states" json:"states"`
	Transitions []*domain.Transition `yaml:"transitions" json:"transitions"`
}

// Catalog implements ports.Catalog using in-memory maps.
// It is read-only after construction and therefore safe for concurrent use.
type Catalog struct {
	states      map[string]*domain.State
	transitions map[string]*domain.Transition
}

// NewCatalog creates a catalog owning the given entities.
// IDs must be unique and transitions may only reference known states.
func NewCatalog(states []*domain.State, transitions []*domain.Transition) (*Catalog, error) {
	c := &Catalog{
		states:      make(map[string]*domain.State, len(states)),
		transitions: make(map[string]*domain.Transition, len(transitions)),
	}

	for _, s := range states {
		if s == nil || s.ID == "" {
			return nil, fmt.Errorf("state missing ID")
		}
		if _, exists := c.states[s.ID]; exists {
			return nil, fmt.Errorf("%w: state %q", domain.ErrDuplicateID, s.ID)
		}
		c.states[s.ID] = s
	}

	for _, t := range transitions {
		if t == nil || t.ID == "" {
			return nil, fmt.Errorf("transition missing ID")
		}
		if _, exists := c.transitions[t.ID]; exists {
			return nil, fmt.Errorf("%w: transition %q", domain.ErrDuplicateID, t.ID)
		}
		for _, ref := range []string{t.SourceID, t.TargetID} {
			if ref == "" {
				continue
			}
			if _, ok := c.states[ref]; !ok {
				return nil, fmt.Errorf("transition %q references %w: %s", t.ID, domain.ErrStateNotFound, ref)
			}
		}
		c.transitions[t.ID] = t
	}

	return c, nil
}

// NewFromLayout creates a catalog from a decoded layout.
func NewFromLayout(l Layout) (*Catalog, error) {
	return NewCatalog(l.States, l.Transitions)
}

// ParseYAML decodes a YAML layout (JSON is valid YAML too).
func ParseYAML(data []byte) (*Catalog, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	return NewFromLayout(l)
}

// LoadFile reads a layout file. The format is picked from the extension,
// defaulting to YAML.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var l Layout
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("failed to parse layout.json: %w", err)
		}
		return NewFromLayout(l)
	}
	return ParseYAML(data)
}

// State resolves a state by ID.
func (c *Catalog) State(id string) (*domain.State, error) {
	s, ok := c.states[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStateNotFound, id)
	}
	return s, nil
}

// Transition resolves a transition by ID.
func (c *Catalog) Transition(id string) (*domain.Transition, error) {
	t, ok := c.transitions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransitionNotFound, id)
	}
	return t, nil
}

// States returns all states ordered by ID.
func (c *Catalog) States() []*domain.State {
	out := make([]*domain.State, 0, len(c.states))
	for _, s := range c.states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID }) // Deterministic order
	return out
}

// Transitions returns all transitions ordered by ID.
func (c *Catalog) Transitions() []*domain.Transition {
	out := make([]*domain.Transition, 0, len(c.transitions))
	for _, t := range c.transitions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
