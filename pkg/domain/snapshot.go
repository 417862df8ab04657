package domain

// Snapshot is a consistent, serializable copy of everything the tracker exposes.
type Snapshot struct {
	HistorySize int  `json:"history_size" yaml:"history_size"`
	Running     bool `json:"running" yaml:"running"`

	ActiveConfiguration []string `json:"active_configuration" yaml:"active_configuration"`
	ActiveRegion        Rect     `json:"active_region" yaml:"active_region"`

	// Configurations and Transitions are oldest first.
	Configurations [][]string `json:"configurations" yaml:"configurations"`
	Transitions    []string   `json:"transitions" yaml:"transitions"`

	// Activeness scores for every state and transition known to the catalog.
	StateActiveness      map[string]float64 `json:"state_activeness" yaml:"state_activeness"`
	TransitionActiveness map[string]float64 `json:"transition_activeness" yaml:"transition_activeness"`
}
