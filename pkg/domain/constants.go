package domain

// Field names shared by the JSON, YAML and mapstructure encodings of Event.
const (
	KeyType       = "type"
	KeyStates     = "states"
	KeyTransition = "transition"
	KeyRunning    = "running"
	KeySize       = "size"
)
