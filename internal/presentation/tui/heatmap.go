package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/muesli/termenv"
)

const barWidth = 20

// glow maps an activeness score to a colour, from dim grey to bright amber.
var glow = []string{"#4b5563", "#92400e", "#d97706", "#f59e0b", "#fde047"}

// Heatmap renders activeness scores as coloured bars.
type Heatmap struct {
	Profile termenv.Profile
}

// NewHeatmap uses the colour profile of the environment.
// termenv.Ascii disables colours entirely.
func NewHeatmap(profile termenv.Profile) *Heatmap {
	return &Heatmap{Profile: profile}
}

// Render writes both score tables of the snapshot.
func (h *Heatmap) Render(w io.Writer, snap domain.Snapshot) {
	h.section(w, "States", snap.StateActiveness, snap.ActiveConfiguration)
	fmt.Fprintln(w)
	h.section(w, "Transitions", snap.TransitionActiveness, lastOf(snap.Transitions))
	fmt.Fprintf(w, "\nActive region: %s   running: %t   history: %d/%d\n",
		snap.ActiveRegion, snap.Running, len(snap.Configurations), snap.HistorySize)
}

func (h *Heatmap) section(w io.Writer, title string, scores map[string]float64, active []string) {
	fmt.Fprintln(w, h.Profile.String(title).Bold())

	ids := make([]string, 0, len(scores))
	width := 0
	for id := range scores {
		ids = append(ids, id)
		width = max(width, len(id))
	}
	// Hottest first, ties by ID.
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})

	isActive := make(map[string]bool, len(active))
	for _, id := range active {
		isActive[id] = true
	}

	for _, id := range ids {
		score := scores[id]
		marker := " "
		if isActive[id] {
			marker = "*"
		}
		bar := h.Profile.String(Bar(score, barWidth)).Foreground(h.Profile.Color(GlowColor(score)))
		fmt.Fprintf(w, " %s %-*s %s %4.2f\n", marker, width, id, bar, score)
	}
}

// Bar draws a fixed-width bar proportional to score.
func Bar(score float64, width int) string {
	score = min(max(score, 0), 1)
	filled := int(score*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// GlowColor picks the colour bucket of a score.
func GlowColor(score float64) string {
	score = min(max(score, 0), 1)
	i := int(score * float64(len(glow)-1))
	return glow[i]
}

func lastOf(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return ids[len(ids)-1:]
}
