package ports

import (
	"testing"

	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCatalogContract runs a suite of tests to verify that a Catalog implementation
// adheres to the defined interface contract.
//
// The catalog under test must contain at least the states "idle" and "busy" and
// a transition "start" from idle to busy.
func RunCatalogContract(t *testing.T, catalog Catalog) {
	t.Run("Resolve State", func(t *testing.T) {
		idle, err := catalog.State("idle")
		require.NoError(t, err)
		assert.Equal(t, "idle", idle.ID)

		again, err := catalog.State("idle")
		require.NoError(t, err)
		assert.Same(t, idle, again, "the same ID must resolve to the same reference")
	})

	t.Run("Resolve Transition", func(t *testing.T) {
		start, err := catalog.Transition("start")
		require.NoError(t, err)
		assert.Equal(t, "idle", start.SourceID)
		assert.Equal(t, "busy", start.TargetID)

		again, err := catalog.Transition("start")
		require.NoError(t, err)
		assert.Same(t, start, again)
	})

	t.Run("Unknown IDs", func(t *testing.T) {
		_, err := catalog.State("non-existent")
		assert.ErrorIs(t, err, domain.ErrStateNotFound)

		_, err = catalog.Transition("non-existent")
		assert.ErrorIs(t, err, domain.ErrTransitionNotFound)
	})

	t.Run("List Ordered", func(t *testing.T) {
		states := catalog.States()
		require.GreaterOrEqual(t, len(states), 2)
		for i := 1; i < len(states); i++ {
			assert.Less(t, states[i-1].ID, states[i].ID)
		}

		transitions := catalog.Transitions()
		require.NotEmpty(t, transitions)
		for i := 1; i < len(transitions); i++ {
			assert.Less(t, transitions[i-1].ID, transitions[i].ID)
		}
	})
}
