package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/afterglow/pkg/ports"
)

// ValidateGraph crawls the layout from startID and reports every state that
// no chain of transitions reaches.
func ValidateGraph(catalog ports.Catalog, startID string) error {
	start, err := catalog.State(startID)
	if err != nil {
		return fmt.Errorf("start state '%s' not found: %w", startID, err)
	}

	outgoing := make(map[string][]string)
	for _, t := range catalog.Transitions() {
		if t.SourceID == "" || t.TargetID == "" {
			continue
		}
		outgoing[t.SourceID] = append(outgoing[t.SourceID], t.TargetID)
	}

	visited := map[string]bool{}
	queue := []string{start.ID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, target := range outgoing[current] {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	var errors []string
	for _, s := range catalog.States() {
		if !visited[s.ID] {
			errors = append(errors, fmt.Sprintf("Unreachable state: '%s'", s.ID))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}

// Lint returns non-fatal findings about the layout.
// States without area never contribute to the active region, and isolated
// states can only be activated explicitly.
func Lint(catalog ports.Catalog) []string {
	connected := make(map[string]bool)
	for _, t := range catalog.Transitions() {
		connected[t.SourceID] = true
		connected[t.TargetID] = true
	}

	var warnings []string
	for _, s := range catalog.States() {
		if s.Bounds.IsEmpty() {
			warnings = append(warnings, fmt.Sprintf("state '%s' has empty bounds", s.ID))
		}
		if !connected[s.ID] {
			warnings = append(warnings, fmt.Sprintf("state '%s' has no transitions", s.ID))
		}
	}
	return warnings
}
