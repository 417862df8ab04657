package dsl

import (
	"fmt"

	"github.com/aretw0/afterglow/pkg/adapters/memory"
	"github.com/aretw0/afterglow/pkg/domain"
)

// Builder collects states and transitions in declaration order.
type Builder struct {
	states map[string]*StateBuilder
	order  []*StateBuilder
}

// New creates a new layout builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]*StateBuilder),
	}
}

// State declares a state.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{
		state:   &domain.State{ID: id},
		builder: b,
	}
	b.states[id] = sb
	b.order = append(b.order, sb)
	return sb
}

// Build compiles the layout into an in-memory catalog.
func (b *Builder) Build() (*memory.Catalog, error) {
	states := make([]*domain.State, 0, len(b.order))
	var transitions []*domain.Transition
	for _, sb := range b.order {
		states = append(states, sb.state)
		transitions = append(transitions, sb.transitions...)
	}

	catalog, err := memory.NewCatalog(states, transitions)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	return catalog, nil
}
