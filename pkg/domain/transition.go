package domain

// Transition is a directed edge between two states.
// Like State it is referenced, never owned, and compared by identity.
type Transition struct {
	ID string `json:"id" yaml:"id"`

	// SourceID and TargetID name the states this edge connects.
	// TargetID may be empty for targetless (internal) transitions.
	SourceID string `json:"source,omitempty" yaml:"source,omitempty"`
	TargetID string `json:"target,omitempty" yaml:"target,omitempty"`

	// Event is the trigger that fires this transition, if any.
	Event string `json:"event,omitempty" yaml:"event,omitempty"`
}
