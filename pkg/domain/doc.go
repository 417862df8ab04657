/*
Package domain contains the core domain models of the afterglow tracker.

It defines the entities the tracker observes and the values it derives from them.
This package is kept pure and free of I/O, following Hexagonal Architecture
principles; adapters translate wire formats into these types.

# Key Entities

  - State: A node of the observed state machine, with its on-screen geometry.
  - Transition: A directed edge, compared by identity.
  - Configuration: The set of states simultaneously active at one instant.
  - Rect: An axis-aligned rectangle; the active region is a union of these.
  - TrackerHooks: Synchronous callbacks fired when observable properties change.
  - Event: The upstream envelope used by transports to feed the tracker.
*/
package domain
