package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/afterglow/pkg/domain"
)

// Markdown summarizes a snapshot for the glamour renderer.
func Markdown(title string, snap domain.Snapshot) string {
	var sb strings.Builder

	if title == "" {
		title = "Execution history"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "- **Running:** %t\n", snap.Running)
	fmt.Fprintf(&sb, "- **History:** %d of %d\n", len(snap.Configurations), snap.HistorySize)
	fmt.Fprintf(&sb, "- **Active configuration:** %s\n", joinIDs(snap.ActiveConfiguration))
	fmt.Fprintf(&sb, "- **Active region:** `%s`\n\n", snap.ActiveRegion)

	sb.WriteString("## Configurations (oldest first)\n\n")
	if len(snap.Configurations) == 0 {
		sb.WriteString("_none_\n\n")
	}
	for i, c := range snap.Configurations {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, joinIDs(c))
	}
	sb.WriteString("\n")

	sb.WriteString("## Transitions (oldest first)\n\n")
	if len(snap.Transitions) == 0 {
		sb.WriteString("_none_\n\n")
	}
	for i, id := range snap.Transitions {
		fmt.Fprintf(&sb, "%d. `%s`\n", i+1, id)
	}
	sb.WriteString("\n")

	writeScores(&sb, "State activeness", snap.StateActiveness)
	writeScores(&sb, "Transition activeness", snap.TransitionActiveness)

	return sb.String()
}

func writeScores(sb *strings.Builder, title string, scores map[string]float64) {
	fmt.Fprintf(sb, "## %s\n\n", title)
	sb.WriteString("| ID | Activeness |\n|---|---:|\n")

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(sb, "| `%s` | %.2f |\n", id, scores[id])
	}
	sb.WriteString("\n")
}

func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return "_empty_"
	}
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "`" + id + "`"
	}
	return strings.Join(quoted, ", ")
}
