package history

import (
	"errors"
	"fmt"
	"iter"
)

// ErrIndexOutOfRange is returned (or carried by the panic of At) when an index
// falls outside [0, Len()).
var ErrIndexOutOfRange = errors.New("history: index out of range")

// Buffer is a bounded, oldest-first ring buffer.
// Storage grows with the number of retained items, not with the capacity.
// The zero value is a buffer with capacity 0. Not safe for concurrent use.
type Buffer[T any] struct {
	items    []T // len(items) == Len(); wraps only once len(items) == capacity
	head     int // slot of the oldest item, always 0 until the buffer is full
	capacity int
}

// New creates a buffer able to hold capacity items.
func New[T any](capacity int) *Buffer[T] {
	return &Buffer[T]{capacity: max(capacity, 0)}
}

// Cap returns the maximum number of retained items.
func (b *Buffer[T]) Cap() int { return b.capacity }

// Len returns the number of retained items.
func (b *Buffer[T]) Len() int { return len(b.items) }

// IsEmpty reports whether the buffer holds no items.
func (b *Buffer[T]) IsEmpty() bool { return len(b.items) == 0 }

// SetCapacity changes the capacity. Shrinking below Len drops the oldest items
// first; negative values are treated as 0.
func (b *Buffer[T]) SetCapacity(n int) {
	n = max(n, 0)
	if n == b.capacity {
		return
	}

	keep := min(len(b.items), n)
	drop := len(b.items) - keep

	items := make([]T, keep)
	for i := range items {
		items[i] = b.items[b.slot(drop+i)]
	}

	b.items = items
	b.head = 0
	b.capacity = n
}

// Push appends item as the newest entry, evicting the oldest one when the
// buffer is full. Pushing into a zero-capacity buffer is a no-op.
func (b *Buffer[T]) Push(item T) {
	if b.capacity == 0 {
		return
	}
	if len(b.items) < b.capacity {
		b.items = append(b.items, item)
		return
	}
	b.items[b.head] = item
	b.head = (b.head + 1) % len(b.items)
}

// Clear removes every item. The capacity is unchanged.
func (b *Buffer[T]) Clear() {
	clear(b.items)
	b.items = b.items[:0]
	b.head = 0
}

// Last returns the most recently pushed surviving item.
func (b *Buffer[T]) Last() (T, bool) {
	if len(b.items) == 0 {
		var zero T
		return zero, false
	}
	return b.items[b.slot(len(b.items)-1)], true
}

// At returns the item at index i, counted from the oldest.
// It panics with an error wrapping ErrIndexOutOfRange if i is not in [0, Len()).
func (b *Buffer[T]) At(i int) T {
	item, err := b.Get(i)
	if err != nil {
		panic(err)
	}
	return item
}

// Get is the checked variant of At.
func (b *Buffer[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(b.items) {
		var zero T
		return zero, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(b.items))
	}
	return b.items[b.slot(i)], nil
}

// Entries returns a snapshot of the items, oldest first.
// The returned slice never aliases the buffer's storage.
func (b *Buffer[T]) Entries() []T {
	out := make([]T, len(b.items))
	for i := range out {
		out[i] = b.items[b.slot(i)]
	}
	return out
}

// All iterates oldest to newest, yielding each item with its oldest-first index.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < len(b.items); i++ {
			if !yield(i, b.items[b.slot(i)]) {
				return
			}
		}
	}
}

// Backward iterates newest to oldest. Indexes are still oldest-first, so the
// first pair yielded has index Len()-1.
func (b *Buffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(b.items) - 1; i >= 0; i-- {
			if !yield(i, b.items[b.slot(i)]) {
				return
			}
		}
	}
}

func (b *Buffer[T]) slot(i int) int {
	return (b.head + i) % len(b.items)
}
