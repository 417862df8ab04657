package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/afterglow/internal/testutils"
	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/ports"
	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestLoad_Contract(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	writeFiles(t, dir, map[string]string{
		"idle.md": `---
id: idle
label: Idle
x: 0
y: 0
width: 10
height: 10
transitions:
  - id: start
    to: busy
    event: go
---
Waiting for work.`,
		"busy.md": `---
id: busy
x: 20
y: 0
width: 10
height: 10
transitions:
  - idle
---
Working.`,
	})

	catalog, err := Load(context.Background(), loam.NewTypedRepository[StateMetadata](repo))
	require.NoError(t, err)

	ports.RunCatalogContract(t, catalog)

	idle, err := catalog.State("idle")
	require.NoError(t, err)
	assert.Equal(t, "Idle", idle.Label)
	assert.Equal(t, domain.Rect{X: 0, Y: 0, Width: 10, Height: 10}, idle.Bounds)

	start, err := catalog.Transition("start")
	require.NoError(t, err)
	assert.Equal(t, "go", start.Event)

	back, err := catalog.Transition("busy->idle")
	require.NoError(t, err, "shorthand transitions get a derived id")
	assert.Equal(t, "busy", back.SourceID)
	assert.Equal(t, "idle", back.TargetID)
}

func TestLoad_ImplicitIDAndJSON(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	writeFiles(t, dir, map[string]string{
		"implicit.md": `---
label: From file name
---
`,
		"other.json": `{"id": "other.json", "width": 4, "height": 2}`,
	})

	catalog, err := Load(context.Background(), loam.NewTypedRepository[StateMetadata](repo))
	require.NoError(t, err)

	_, err = catalog.State("implicit")
	assert.NoError(t, err)
	other, err := catalog.State("other")
	require.NoError(t, err)
	assert.Equal(t, 4.0, other.Bounds.Width)
}

func TestLoad_DetectsCollisions(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	writeFiles(t, dir, map[string]string{
		"foo.md":   "---\nid: foo\n---\n",
		"foo.json": `{"id": "foo"}`,
	})

	_, err := Load(context.Background(), loam.NewTypedRepository[StateMetadata](repo))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoad_DanglingTarget(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	writeFiles(t, dir, map[string]string{
		"a.md": "---\nid: a\ntransitions:\n  - nowhere\n---\n",
	})

	_, err := Load(context.Background(), loam.NewTypedRepository[StateMetadata](repo))
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestDecodeTransitions_Invalid(t *testing.T) {
	_, err := decodeTransitions("a", []any{42})
	assert.Error(t, err)

	_, err = decodeTransitions("a", []any{map[string]any{"id": "x"}})
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"idle.md": "---\nid: idle\ntransitions:\n  - id: start\n    to: busy\n---\n",
		"busy.md": "---\nid: busy\n---\n",
	})

	catalog, err := Open(context.Background(), dir)
	require.NoError(t, err)
	ports.RunCatalogContract(t, catalog)
}
