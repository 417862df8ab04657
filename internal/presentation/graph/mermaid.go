package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/afterglow/pkg/domain"
)

// fadeLevels is the number of glow classes; level 0 is cold.
const fadeLevels = 5

var fadeFills = [fadeLevels]string{"#f3f4f6", "#fef3c7", "#fde68a", "#fbbf24", "#f59e0b"}

// GenerateMermaid produces a Mermaid flowchart of the catalog.
// States with bounds are drawn as rectangles, states without as rounded boxes.
// When snap is non-nil, states and transitions are coloured by activeness and
// the active configuration is outlined.
func GenerateMermaid(states []*domain.State, transitions []*domain.Transition, snap *domain.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range states {
		opener, closer := "[", "]"
		if s.BoundingRect().IsEmpty() {
			opener, closer = "(", ")"
		}
		label := strings.ReplaceAll(s.DisplayName(), "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(s.ID), opener, label, closer))
	}

	for _, t := range transitions {
		arrow := "-->"
		if t.Event != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(t.Event, "\"", "'"))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(t.SourceID), arrow, sanitizeMermaidID(t.TargetID)))
	}

	if snap == nil {
		return sb.String()
	}

	sb.WriteString("\n    %% Activeness Overlay\n")
	// Force black text (color:#000) for high-contrast regardless of theme
	for level, fill := range fadeFills {
		sb.WriteString(fmt.Sprintf("    classDef glow%d fill:%s,stroke:#92400e,color:#000;\n", level, fill))
	}
	sb.WriteString("    classDef active stroke:#b91c1c,stroke-width:4px;\n")

	for _, s := range states {
		sb.WriteString(fmt.Sprintf("    class %s glow%d;\n", sanitizeMermaidID(s.ID), FadeLevel(snap.StateActiveness[s.ID])))
	}
	for _, id := range snap.ActiveConfiguration {
		sb.WriteString(fmt.Sprintf("    class %s active;\n", sanitizeMermaidID(id)))
	}

	// Links are addressed by declaration order.
	for i, t := range transitions {
		score := snap.TransitionActiveness[t.ID]
		if score == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("    linkStyle %d stroke:%s,stroke-width:%dpx;\n", i, fadeFills[FadeLevel(score)], 1+FadeLevel(score)))
	}

	return sb.String()
}

// FadeLevel buckets a score into [0, fadeLevels). Any non-zero score is at least 1.
func FadeLevel(score float64) int {
	if score <= 0 {
		return 0
	}
	level := int(score*float64(fadeLevels-1) + 0.5)
	return min(max(level, 1), fadeLevels-1)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
