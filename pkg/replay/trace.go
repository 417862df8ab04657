package replay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/ports"
	"gopkg.in/yaml.v3"
)

// ErrEmptyTrace is returned when a trace has no events.
var ErrEmptyTrace = errors.New("trace has no events")

// Trace is a recorded run of a state machine.
type Trace struct {
	Name string `yaml:"name"`

	// HistorySize, when set, is applied before the first event.
	HistorySize *int `yaml:"history_size,omitempty"`

	Events []domain.Event `yaml:"events"`
}

// Report is the outcome of a replay.
type Report struct {
	Name     string
	Applied  int
	Snapshot domain.Snapshot
}

// Parse decodes a YAML trace and validates every event.
func Parse(data []byte) (*Trace, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var trace Trace
	if err := dec.Decode(&trace); err != nil {
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}
	if err := trace.Validate(); err != nil {
		return nil, err
	}
	return &trace, nil
}

// LoadFile reads and parses a trace file.
func LoadFile(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the trace shape without resolving IDs.
func (t *Trace) Validate() error {
	if len(t.Events) == 0 {
		return ErrEmptyTrace
	}
	if t.HistorySize != nil && *t.HistorySize < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidHistorySize, *t.HistorySize)
	}
	for i, evt := range t.Events {
		if err := evt.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// Run applies the trace to the tracker and stops at the first failing event.
// The report reflects whatever was applied, even on error.
func Run(ctx context.Context, tracker ports.Tracker, trace *Trace) (*Report, error) {
	report := &Report{Name: trace.Name}

	if trace.HistorySize != nil {
		if err := tracker.Apply(ctx, domain.HistorySizeEvent(*trace.HistorySize)); err != nil {
			report.Snapshot = tracker.Snapshot()
			return report, fmt.Errorf("history size: %w", err)
		}
	}

	for i, evt := range trace.Events {
		if err := ctx.Err(); err != nil {
			report.Snapshot = tracker.Snapshot()
			return report, err
		}
		if err := tracker.Apply(ctx, evt); err != nil {
			report.Snapshot = tracker.Snapshot()
			return report, fmt.Errorf("event %d (%s): %w", i, evt.Type, err)
		}
		report.Applied++
	}

	report.Snapshot = tracker.Snapshot()
	return report, nil
}
