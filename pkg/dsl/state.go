package dsl

import "github.com/aretw0/afterglow/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state       *domain.State
	transitions []*domain.Transition
	builder     *Builder
}

// Label sets the display name.
func (s *StateBuilder) Label(label string) *StateBuilder {
	s.state.Label = label
	return s
}

// At sets the top-left corner of the state's bounds.
func (s *StateBuilder) At(x, y float64) *StateBuilder {
	s.state.Bounds.X = x
	s.state.Bounds.Y = y
	return s
}

// Size sets the width and height of the state's bounds.
func (s *StateBuilder) Size(width, height float64) *StateBuilder {
	s.state.Bounds.Width = width
	s.state.Bounds.Height = height
	return s
}

// Bounds sets the whole rectangle at once.
func (s *StateBuilder) Bounds(r domain.Rect) *StateBuilder {
	s.state.Bounds = r
	return s
}

// Go adds an eventless transition to target, identified as "source->target".
func (s *StateBuilder) Go(target string) *StateBuilder {
	return s.On(s.state.ID+"->"+target, "", target)
}

// On adds a named transition triggered by event.
func (s *StateBuilder) On(id, event, target string) *StateBuilder {
	s.transitions = append(s.transitions, &domain.Transition{
		ID:       id,
		SourceID: s.state.ID,
		TargetID: target,
		Event:    event,
	})
	return s
}

// State switches to another state of the same builder.
func (s *StateBuilder) State(id string) *StateBuilder {
	return s.builder.State(id)
}
