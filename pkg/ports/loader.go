package ports

import "github.com/aretw0/afterglow/pkg/domain"

// Catalog owns the State and Transition entities of one state machine layout.
// The tracker resolves IDs through it and keeps references to what it returns,
// so a Catalog must hand out the same pointer for the same ID every time.
type Catalog interface {
	// State returns the state with the given ID, or domain.ErrStateNotFound.
	State(id string) (*domain.State, error)

	// Transition returns the transition with the given ID, or domain.ErrTransitionNotFound.
	Transition(id string) (*domain.Transition, error)

	// States lists every state, ordered by ID.
	States() []*domain.State

	// Transitions lists every transition, ordered by ID.
	Transitions() []*domain.Transition
}
