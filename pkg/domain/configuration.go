package domain

import (
	"encoding/json"
	"sort"
)

// Configuration is the unordered set of states simultaneously active at one
// observed instant. Membership is by reference.
//
// A Configuration is immutable once built; the zero value is the empty set.
type Configuration struct {
	states map[*State]struct{}
}

// NewConfiguration builds a configuration from the given states.
// Nil entries and duplicates are ignored.
func NewConfiguration(states ...*State) Configuration {
	c := Configuration{states: make(map[*State]struct{}, len(states))}
	for _, s := range states {
		if s != nil {
			c.states[s] = struct{}{}
		}
	}
	return c
}

// Len returns the number of states in the configuration.
func (c Configuration) Len() int { return len(c.states) }

// IsEmpty reports whether no state is active.
func (c Configuration) IsEmpty() bool { return len(c.states) == 0 }

// Contains reports whether s is part of the configuration.
func (c Configuration) Contains(s *State) bool {
	_, ok := c.states[s]
	return ok
}

// Equal reports set equality: both configurations reference exactly the same states.
func (c Configuration) Equal(o Configuration) bool {
	if len(c.states) != len(o.states) {
		return false
	}
	for s := range c.states {
		if _, ok := o.states[s]; !ok {
			return false
		}
	}
	return true
}

// States returns the members ordered by ID, for deterministic output.
func (c Configuration) States() []*State {
	out := make([]*State, 0, len(c.states))
	for s := range c.states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns the sorted IDs of the member states.
func (c Configuration) IDs() []string {
	states := c.States()
	ids := make([]string, len(states))
	for i, s := range states {
		ids[i] = s.ID
	}
	return ids
}

// BoundingRect returns the union of the bounding rectangles of every member.
func (c Configuration) BoundingRect() Rect {
	var region Rect
	for s := range c.states {
		region = region.United(s.BoundingRect())
	}
	return region
}

// MarshalJSON encodes the configuration as its sorted list of state IDs.
func (c Configuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.IDs())
}
