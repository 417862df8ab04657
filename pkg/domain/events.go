package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// EventType defines the category of an upstream event.
type EventType string

const (
	EventConfiguration EventType = "configuration"
	EventTransition    EventType = "transition"
	EventRunning       EventType = "running"
	EventClear         EventType = "clear"
	EventHistorySize   EventType = "history_size"
)

// Event is the envelope used by transports (HTTP, Redis, MCP, replay traces)
// to report what the execution engine did. Entities are referenced by ID and
// resolved against a catalog by the tracker.
type Event struct {
	Type EventType `json:"type" yaml:"type" mapstructure:"type"`

	// States lists the IDs of the active states (EventConfiguration).
	States []string `json:"states,omitempty" yaml:"states,omitempty" mapstructure:"states"`

	// Transition is the ID of the fired transition (EventTransition).
	Transition string `json:"transition,omitempty" yaml:"transition,omitempty" mapstructure:"transition"`

	// Running is the new running flag (EventRunning).
	Running *bool `json:"running,omitempty" yaml:"running,omitempty" mapstructure:"running"`

	// Size is the new history capacity (EventHistorySize).
	Size *int `json:"size,omitempty" yaml:"size,omitempty" mapstructure:"size"`
}

// Validate checks that the fields required by the event type are present.
func (e Event) Validate() error {
	switch e.Type {
	case EventConfiguration, EventClear:
		return nil
	case EventTransition:
		// An empty ID is a degenerate reference; the tracker drops it silently.
		return nil
	case EventRunning:
		if e.Running == nil {
			return fmt.Errorf("%w: %s event requires %q", ErrInvalidEvent, e.Type, KeyRunning)
		}
		return nil
	case EventHistorySize:
		if e.Size == nil {
			return fmt.Errorf("%w: %s event requires %q", ErrInvalidEvent, e.Type, KeySize)
		}
		if *e.Size < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidHistorySize, *e.Size)
		}
		return nil
	case "":
		return fmt.Errorf("%w: missing %q", ErrInvalidEvent, KeyType)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
}

// DecodeEvent converts a generic map (decoded JSON, YAML or tool arguments)
// into an Event and validates it.
func DecodeEvent(raw map[string]any) (Event, error) {
	var evt Event
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &evt,
		ErrorUnused: true,
		DecodeHook:  mapstructure.DecodeHookFuncType(integralFloatHook),
	})
	if err != nil {
		return Event{}, fmt.Errorf("failed to build event decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := evt.Validate(); err != nil {
		return Event{}, err
	}
	return evt, nil
}

// integralFloatHook lets whole floats (tool arguments arrive as float64) fill
// integer fields and rejects fractional or out-of-range ones.
func integralFloatHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}

	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	return int64(f), nil
}

// ParseEvent decodes a JSON encoded event.
func ParseEvent(data []byte) (Event, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber() // keeps "size": 2.5 from being truncated silently

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return DecodeEvent(raw)
}

// ConfigurationEvent builds an EventConfiguration for the given state IDs.
func ConfigurationEvent(stateIDs ...string) Event {
	return Event{Type: EventConfiguration, States: stateIDs}
}

// TransitionEvent builds an EventTransition.
func TransitionEvent(transitionID string) Event {
	return Event{Type: EventTransition, Transition: transitionID}
}

// RunningEvent builds an EventRunning.
func RunningEvent(running bool) Event {
	return Event{Type: EventRunning, Running: &running}
}

// HistorySizeEvent builds an EventHistorySize.
func HistorySizeEvent(size int) Event {
	return Event{Type: EventHistorySize, Size: &size}
}
