/*
Package history provides Buffer, a fixed-capacity ring buffer that keeps the most
recent items in insertion order and evicts the oldest one when full.

It is the storage behind the execution tracker: one buffer holds the observed
configurations and another the fired transitions.

# Eviction

  - Push on a full buffer drops exactly one item, the oldest.
  - SetCapacity below the current length drops the oldest excess items at once.
  - SetCapacity above the current length never drops anything.
  - A buffer with capacity 0 silently discards every push.
*/
package history
