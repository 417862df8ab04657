package afterglow_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/afterglow"
	"github.com/aretw0/afterglow/pkg/adapters/memory"
	"github.com/aretw0/afterglow/pkg/domain"
)

// ExampleNew shows how scores fade as newer configurations are recorded.
func ExampleNew() {
	catalog, err := memory.NewCatalog(
		[]*domain.State{
			{ID: "idle", Bounds: domain.Rect{X: 0, Y: 0, Width: 10, Height: 10}},
			{ID: "busy", Bounds: domain.Rect{X: 20, Y: 0, Width: 10, Height: 10}},
		},
		[]*domain.Transition{
			{ID: "start", SourceID: "idle", TargetID: "busy"},
		},
	)
	if err != nil {
		log.Fatal(err)
	}

	tracker := afterglow.New(catalog, afterglow.WithHistorySize(4))
	ctx := context.Background()

	_ = tracker.SetActiveStates(ctx, "idle")
	_ = tracker.RecordTransition(ctx, "start")
	_ = tracker.SetActiveStates(ctx, "busy")

	idle, _ := tracker.StateActiveness("idle")
	busy, _ := tracker.StateActiveness("busy")
	start, _ := tracker.TransitionActiveness("start")

	fmt.Printf("idle=%.2f busy=%.2f start=%.2f\n", idle, busy, start)
	fmt.Println("region:", tracker.ActiveRegion())
	// Output:
	// idle=0.50 busy=1.00 start=1.00
	// region: (20,0 10x10)
}

// ExampleTracker_Observe shows how to react to configuration changes.
func ExampleTracker_Observe() {
	catalog, _ := memory.NewCatalog([]*domain.State{{ID: "a"}, {ID: "b"}}, nil)
	tracker := afterglow.New(catalog)

	stop := tracker.Observe(domain.TrackerHooks{
		OnActiveConfigurationChanged: func(_ context.Context, c domain.Configuration) {
			fmt.Println("active:", c.IDs())
		},
	})
	defer stop()

	ctx := context.Background()
	_ = tracker.SetActiveStates(ctx, "a", "b")
	_ = tracker.SetActiveStates(ctx, "b", "a") // same set, skipped
	_ = tracker.SetActiveStates(ctx, "b")
	// Output:
	// active: [a b]
	// active: [b]
}
