package replay_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/afterglow"
	"github.com/aretw0/afterglow/pkg/adapters/memory"
	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layout = `
states:
  - id: idle
    bounds: {x: 0, y: 0, width: 10, height: 10}
  - id: busy
    bounds: {x: 20, y: 0, width: 10, height: 10}
transitions:
  - id: start
    source: idle
    target: busy
  - id: stop
    source: busy
    target: idle
`

const trace = `
name: ping-pong
history_size: 3
events:
  - type: running
    running: true
  - type: configuration
    states: [idle]
  - type: transition
    transition: start
  - type: configuration
    states: [busy]
  - type: transition
    transition: stop
  - type: configuration
    states: [idle]
`

func newTracker(t *testing.T) *afterglow.Tracker {
	t.Helper()
	catalog, err := memory.ParseYAML([]byte(layout))
	require.NoError(t, err)
	return afterglow.New(catalog)
}

func TestRun(t *testing.T) {
	tr, err := replay.Parse([]byte(trace))
	require.NoError(t, err)

	report, err := replay.Run(context.Background(), newTracker(t), tr)
	require.NoError(t, err)

	assert.Equal(t, "ping-pong", report.Name)
	assert.Equal(t, 6, report.Applied)

	snap := report.Snapshot
	assert.Equal(t, 3, snap.HistorySize)
	assert.True(t, snap.Running)
	assert.Equal(t, [][]string{{"idle"}, {"busy"}, {"idle"}}, snap.Configurations)
	assert.Equal(t, 1.0, snap.StateActiveness["idle"])
	assert.InDelta(t, 2.0/3.0, snap.StateActiveness["busy"], 1e-9)
	assert.Equal(t, 0.5, snap.TransitionActiveness["start"])
	assert.Equal(t, 1.0, snap.TransitionActiveness["stop"])
	assert.Equal(t, domain.Rect{Width: 10, Height: 10}, snap.ActiveRegion)
}

func TestRun_StopsAtUnknownID(t *testing.T) {
	tr, err := replay.Parse([]byte(`
events:
  - type: configuration
    states: [idle]
  - type: configuration
    states: [ghost]
  - type: configuration
    states: [busy]
`))
	require.NoError(t, err)

	report, err := replay.Run(context.Background(), newTracker(t), tr)
	require.ErrorIs(t, err, domain.ErrStateNotFound)
	assert.Contains(t, err.Error(), "event 1")
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, []string{"idle"}, report.Snapshot.ActiveConfiguration)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"empty", "name: x\n", replay.ErrEmptyTrace},
		{"negative size", "history_size: -1\nevents:\n  - type: clear\n", domain.ErrInvalidHistorySize},
		{"bad event", "events:\n  - type: running\n", domain.ErrInvalidEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := replay.Parse([]byte(tt.data))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := replay.Parse([]byte("events:\n  - type: clear\nunknown: 1\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(trace), 0644))

	tr, err := replay.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, tr.Events, 6)

	_, err = replay.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
