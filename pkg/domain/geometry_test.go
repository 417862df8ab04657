package domain_test

import (
	"testing"

	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRect_United(t *testing.T) {
	a := domain.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := domain.Rect{X: 5, Y: 5, Width: 10, Height: 10}

	want := domain.Rect{X: 0, Y: 0, Width: 15, Height: 15}
	assert.Equal(t, want, a.United(b))
	assert.Equal(t, want, b.United(a), "union must not depend on order")
	assert.Equal(t, a, a.United(a), "union must be idempotent")
}

func TestRect_UnitedIgnoresNull(t *testing.T) {
	a := domain.Rect{X: 3, Y: 4, Width: 1, Height: 1}
	null := domain.Rect{X: 100, Y: 100}

	assert.Equal(t, a, a.United(null))
	assert.Equal(t, a, null.United(a))
	assert.Equal(t, domain.Rect{}, null.United(domain.Rect{X: -5}))
}

func TestRect_UnitedKeepsZeroWidth(t *testing.T) {
	a := domain.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	line := domain.Rect{X: 50, Y: 0, Width: 0, Height: 10}

	assert.Equal(t, domain.Rect{X: 0, Y: 0, Width: 50, Height: 10}, a.United(line))
	assert.Equal(t, line, domain.Rect{}.United(line))
	assert.True(t, line.IsEmpty())
	assert.False(t, line.IsNull())
}

func TestRect_UnitedNormalizes(t *testing.T) {
	a := domain.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	flipped := domain.Rect{X: 20, Y: 20, Width: -5, Height: -5}

	assert.Equal(t, domain.Rect{X: 0, Y: 0, Width: 20, Height: 20}, a.United(flipped))
}

func TestRect_Equal(t *testing.T) {
	assert.True(t, domain.Rect{}.Equal(domain.Rect{X: 7}))
	assert.False(t, domain.Rect{Width: 1, Height: 1}.Equal(domain.Rect{}))
	assert.True(t, domain.Rect{Width: 1, Height: 1}.Equal(domain.Rect{Width: 1, Height: 1}))
}

func TestRect_String(t *testing.T) {
	assert.Equal(t, "(empty)", domain.Rect{}.String())
	assert.Equal(t, "(1,2 3x4)", domain.Rect{X: 1, Y: 2, Width: 3, Height: 4}.String())
	assert.Equal(t, "(5,0 0x2)", domain.Rect{X: 5, Width: 0, Height: 2}.String())
}
