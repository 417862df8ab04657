/*
Package afterglow tracks the recent execution history of a running state machine.

It keeps a bounded window of the configurations (sets of simultaneously active
states) and transitions that were observed, and derives from it an "activeness"
score for every state and transition so that a visual editor can highlight what
is live and fade what ran a few steps ago. It also maintains the union bounding
rectangle of the active states.

# Concept

The state machine itself is external. afterglow only references its states and
transitions, which are owned by a Catalog (see pkg/ports). Upstream events
("these states are now active", "this transition fired", "the machine stopped")
are reported to the Tracker, which records them and notifies observers through
synchronous hooks.

# Scoring

For a history of n entries indexed oldest-first, a state scores (i+1)/n where i
is its most recent occurrence, and a transition scores (i+1)/n where i is its
oldest retained occurrence. An absent entity scores 0 and the newest entry
scores 1.

# Usage

	catalog, err := memory.LoadFile("layout.yaml")
	if err != nil {
		log.Fatal(err)
	}

	tracker := afterglow.New(catalog, afterglow.WithHistorySize(5))

	ctx := context.Background()
	_ = tracker.SetActiveStates(ctx, "idle")
	_ = tracker.RecordTransition(ctx, "start")
	_ = tracker.SetActiveStates(ctx, "busy")

	score, _ := tracker.StateActiveness("idle") // 0.5

# Adapters

The tracker can be fed over Redis pub/sub (pkg/adapters/redis), HTTP
(pkg/adapters/http) or MCP (pkg/adapters/mcp), and replayed from a trace file
(pkg/replay). Prometheus metrics are available in pkg/observability.
*/
package afterglow
