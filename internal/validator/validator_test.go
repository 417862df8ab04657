package validator

import (
	"testing"

	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGraph(t *testing.T) {
	// start -> a -> b
	b := dsl.New()
	b.State("start").Size(10, 10).Go("a")
	b.State("a").Size(10, 10).Go("b")
	b.State("b").Size(10, 10)
	catalog, err := b.Build()
	require.NoError(t, err)

	assert.NoError(t, ValidateGraph(catalog, "start"))

	err = ValidateGraph(catalog, "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unreachable state: 'start'")

	err = ValidateGraph(catalog, "ghost")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestLint(t *testing.T) {
	b := dsl.New()
	b.State("a").Size(10, 10).Go("b")
	b.State("b")
	b.State("lonely").Size(5, 5)
	catalog, err := b.Build()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"state 'b' has empty bounds",
		"state 'lonely' has no transitions",
	}, Lint(catalog))
}
