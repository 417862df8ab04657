package history_test

import (
	"testing"

	"github.com/aretw0/afterglow/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushAll(b *history.Buffer[int], items ...int) {
	for _, item := range items {
		b.Push(item)
	}
}

func TestBuffer_EvictsOldestOnOverflow(t *testing.T) {
	for _, extra := range []int{1, 2, 3, 7, 11} {
		b := history.New[int](3)
		total := 3 + extra
		for i := 1; i <= total; i++ {
			b.Push(i)
		}

		assert.Equal(t, []int{total - 2, total - 1, total}, b.Entries(), "after %d pushes", total)
		assert.Equal(t, 3, b.Len())
	}
}

func TestBuffer_ShrinkKeepsNewest(t *testing.T) {
	b := history.New[int](5)
	pushAll(b, 1, 2, 3, 4, 5)

	b.SetCapacity(2)

	assert.Equal(t, []int{4, 5}, b.Entries())
	assert.Equal(t, 2, b.Cap())
}

func TestBuffer_ShrinkAfterWrapAround(t *testing.T) {
	b := history.New[int](4)
	pushAll(b, 1, 2, 3, 4, 5, 6) // storage has wrapped

	b.SetCapacity(3)
	assert.Equal(t, []int{4, 5, 6}, b.Entries())

	b.Push(7)
	assert.Equal(t, []int{5, 6, 7}, b.Entries())
}

func TestBuffer_GrowNeverDrops(t *testing.T) {
	b := history.New[int](3)
	pushAll(b, 1, 2, 3, 4)

	b.SetCapacity(10)
	assert.Equal(t, []int{2, 3, 4}, b.Entries())

	pushAll(b, 5, 6)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, b.Entries())
}

func TestBuffer_ZeroCapacity(t *testing.T) {
	b := history.New[int](2)
	pushAll(b, 1, 2)

	b.SetCapacity(0)
	assert.True(t, b.IsEmpty())

	b.Push(3)
	assert.True(t, b.IsEmpty(), "push into zero capacity must be dropped")
	_, ok := b.Last()
	assert.False(t, ok)

	b.SetCapacity(2)
	b.Push(4)
	assert.Equal(t, []int{4}, b.Entries())
}

func TestBuffer_NegativeCapacityIsZero(t *testing.T) {
	b := history.New[string](-1)
	assert.Equal(t, 0, b.Cap())

	b.SetCapacity(-5)
	assert.Equal(t, 0, b.Cap())
}

func TestBuffer_ZeroValue(t *testing.T) {
	var b history.Buffer[int]
	b.Push(1)
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Entries())
}

func TestBuffer_Clear(t *testing.T) {
	b := history.New[int](3)
	pushAll(b, 1, 2, 3, 4)

	b.Clear()

	assert.True(t, b.IsEmpty())
	assert.Equal(t, 3, b.Cap())
	pushAll(b, 9)
	assert.Equal(t, []int{9}, b.Entries())
}

func TestBuffer_Last(t *testing.T) {
	b := history.New[int](2)

	_, ok := b.Last()
	assert.False(t, ok)

	pushAll(b, 1, 2, 3)
	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, 3, last)
}

func TestBuffer_At(t *testing.T) {
	b := history.New[int](3)
	pushAll(b, 10, 20, 30, 40)

	assert.Equal(t, 20, b.At(0))
	assert.Equal(t, 40, b.At(2))

	assert.Panics(t, func() { b.At(3) })
	assert.Panics(t, func() { b.At(-1) })
}

func TestBuffer_Get(t *testing.T) {
	b := history.New[int](3)
	pushAll(b, 1)

	v, err := b.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = b.Get(1)
	assert.ErrorIs(t, err, history.ErrIndexOutOfRange)
}

func TestBuffer_EntriesIsSnapshot(t *testing.T) {
	b := history.New[int](2)
	pushAll(b, 1, 2)

	snapshot := b.Entries()
	pushAll(b, 3, 4)

	assert.Equal(t, []int{1, 2}, snapshot)

	snapshot[0] = 99
	assert.Equal(t, []int{3, 4}, b.Entries())
}

func TestBuffer_Iterators(t *testing.T) {
	b := history.New[string](3)
	for _, s := range []string{"a", "b", "c", "d"} {
		b.Push(s)
	}

	var forward []string
	var forwardIdx []int
	for i, s := range b.All() {
		forwardIdx = append(forwardIdx, i)
		forward = append(forward, s)
	}
	assert.Equal(t, []string{"b", "c", "d"}, forward)
	assert.Equal(t, []int{0, 1, 2}, forwardIdx)

	var backward []string
	var backwardIdx []int
	for i, s := range b.Backward() {
		backwardIdx = append(backwardIdx, i)
		backward = append(backward, s)
	}
	assert.Equal(t, []string{"d", "c", "b"}, backward)
	assert.Equal(t, []int{2, 1, 0}, backwardIdx)
}

func TestBuffer_IteratorStopsEarly(t *testing.T) {
	b := history.New[int](5)
	pushAll(b, 1, 2, 3, 4, 5)

	var seen []int
	for _, v := range b.Backward() {
		seen = append(seen, v)
		if v == 4 {
			break
		}
	}
	assert.Equal(t, []int{5, 4}, seen)
}

func TestBuffer_HugeCapacity(t *testing.T) {
	const huge = 1 << 62

	assert.NotPanics(t, func() {
		b := history.New[int](huge)
		pushAll(b, 1, 2, 3)
		assert.Equal(t, huge, b.Cap())
		assert.Equal(t, []int{1, 2, 3}, b.Entries())
	})

	assert.NotPanics(t, func() {
		b := history.New[int](2)
		pushAll(b, 1, 2, 3)
		b.SetCapacity(huge)
		pushAll(b, 4)
		assert.Equal(t, []int{2, 3, 4}, b.Entries())

		b.SetCapacity(2)
		assert.Equal(t, []int{3, 4}, b.Entries())
	})
}

func TestBuffer_GrowAfterWrapAround(t *testing.T) {
	b := history.New[int](3)
	pushAll(b, 1, 2, 3, 4, 5)

	b.SetCapacity(4)
	pushAll(b, 6, 7)

	assert.Equal(t, []int{4, 5, 6, 7}, b.Entries())
	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, 7, last)
}
