/*
Package ports defines the interfaces between the afterglow tracker and its adapters.

These interfaces decouple the tracking core from where layouts come from and from
how events arrive or notifications leave, so the same tracker can be fed over HTTP,
Redis, MCP or a replay file.

# Key Interfaces

  - Catalog: Resolves state and transition IDs to the shared entities (memory, Loam).
  - EventApplier: Consumes upstream events (Redis subscriber, replay, HTTP).
  - TrackerView: Read side used by visualization adapters.
  - Observable: Registration of synchronous change hooks.
*/
package ports
