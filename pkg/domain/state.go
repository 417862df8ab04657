package domain

// State is a node of the observed state machine.
// States are owned by a catalog; the tracker only holds references to them
// and never mutates them.
type State struct {
	// ID is the stable identifier of the state.
	ID string `json:"id" yaml:"id"`

	// Label is an optional display name.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Bounds is the geometry of the state in scene coordinates.
	Bounds Rect `json:"bounds" yaml:"bounds"`
}

// BoundingRect returns the current geometry of the state.
func (s *State) BoundingRect() Rect {
	if s == nil {
		return Rect{}
	}
	return s.Bounds
}

// DisplayName returns the label, falling back to the ID.
func (s *State) DisplayName() string {
	if s.Label != "" {
		return s.Label
	}
	return s.ID
}
