package loam

// StateMetadata is the frontmatter of a state layout document.
// Geometry keys are flat so that hand-written Markdown stays short.
type StateMetadata struct {
	ID     string  `json:"id" mapstructure:"id"`
	Label  string  `json:"label" mapstructure:"label"`
	X      float64 `json:"x" mapstructure:"x"`
	Y      float64 `json:"y" mapstructure:"y"`
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`

	// Transitions lists outgoing transitions. Each entry is either the target
	// state ID or a map decoded into LayoutTransition.
	Transitions []any `json:"transitions" mapstructure:"transitions"`
}

// LayoutTransition is the long form of an outgoing transition.
type LayoutTransition struct {
	ID    string `json:"id" mapstructure:"id"`
	To    string `json:"to" mapstructure:"to"`
	Event string `json:"event" mapstructure:"event"`
}
