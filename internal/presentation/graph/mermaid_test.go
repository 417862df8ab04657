package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/afterglow/internal/presentation/graph"
	"github.com/aretw0/afterglow/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	idle := &domain.State{ID: "idle", Label: "Idle", Bounds: domain.Rect{Width: 10, Height: 10}}
	busy := &domain.State{ID: "busy-loop"}
	start := &domain.Transition{ID: "start", SourceID: "idle", TargetID: "busy-loop", Event: "go \"now\""}
	back := &domain.Transition{ID: "back", SourceID: "busy-loop", TargetID: "idle"}

	tests := []struct {
		name        string
		snap        *domain.Snapshot
		contains    []string
		notContains []string
	}{
		{
			name: "Shapes And Edges",
			contains: []string{
				"graph LR",
				"idle[\"Idle\"]",
				"busy_loop(\"busy-loop\")",
				"idle -- \"go 'now'\" --> busy_loop",
				"busy_loop --> idle",
			},
			notContains: []string{"classDef"},
		},
		{
			name: "Activeness Overlay",
			snap: &domain.Snapshot{
				ActiveConfiguration:  []string{"busy-loop"},
				StateActiveness:      map[string]float64{"idle": 0.5, "busy-loop": 1},
				TransitionActiveness: map[string]float64{"start": 1},
			},
			contains: []string{
				"classDef glow0",
				"class idle glow2;",
				"class busy_loop glow4;",
				"class busy_loop active;",
				"linkStyle 0 stroke:#f59e0b,stroke-width:5px;",
			},
			notContains: []string{"linkStyle 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid([]*domain.State{idle, busy}, []*domain.Transition{start, back}, tt.snap)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("Expected output to not contain %q, got:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestFadeLevel(t *testing.T) {
	cases := map[float64]int{0: 0, 0.01: 1, 0.25: 1, 0.5: 2, 0.75: 3, 1: 4}
	for score, want := range cases {
		if got := graph.FadeLevel(score); got != want {
			t.Errorf("FadeLevel(%v) = %d, want %d", score, got, want)
		}
	}
}
