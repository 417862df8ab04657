package memory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/afterglow/pkg/adapters/memory"
	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutYAML = `
states:
  - id: idle
    label: Idle
    bounds: {x: 0, y: 0, width: 10, height: 10}
  - id: busy
    bounds: {x: 5, y: 5, width: 10, height: 10}
transitions:
  - id: start
    source: idle
    target: busy
    event: go
`

func TestCatalog_Contract(t *testing.T) {
	catalog, err := memory.ParseYAML([]byte(layoutYAML))
	require.NoError(t, err)

	ports.RunCatalogContract(t, catalog)
}

func TestCatalog_ParsesGeometry(t *testing.T) {
	catalog, err := memory.ParseYAML([]byte(layoutYAML))
	require.NoError(t, err)

	busy, err := catalog.State("busy")
	require.NoError(t, err)
	assert.Equal(t, domain.Rect{X: 5, Y: 5, Width: 10, Height: 10}, busy.BoundingRect())

	idle, err := catalog.State("idle")
	require.NoError(t, err)
	assert.Equal(t, "Idle", idle.DisplayName())
	assert.Equal(t, "busy", busy.DisplayName())
}

func TestCatalog_RejectsDuplicates(t *testing.T) {
	_, err := memory.NewCatalog([]*domain.State{{ID: "a"}, {ID: "a"}}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)

	_, err = memory.NewCatalog([]*domain.State{{ID: "a"}}, []*domain.Transition{{ID: "t"}, {ID: "t"}})
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestCatalog_RejectsDanglingTransitions(t *testing.T) {
	_, err := memory.NewCatalog(
		[]*domain.State{{ID: "a"}},
		[]*domain.Transition{{ID: "t", SourceID: "a", TargetID: "ghost"}},
	)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestCatalog_RejectsMissingIDs(t *testing.T) {
	_, err := memory.NewCatalog([]*domain.State{{Label: "nameless"}}, nil)
	assert.Error(t, err)
}

func TestLoadFile_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "layout.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "states": [{"id": "idle", "bounds": {"x": 1, "y": 2, "width": 3, "height": 4}}, {"id": "busy"}],
  "transitions": [{"id": "start", "source": "idle", "target": "busy"}]
}`), 0644))

	yamlPath := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(layoutYAML), 0644))

	for _, path := range []string{jsonPath, yamlPath} {
		catalog, err := memory.LoadFile(path)
		require.NoError(t, err, path)
		ports.RunCatalogContract(t, catalog)
	}

	_, err := memory.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
