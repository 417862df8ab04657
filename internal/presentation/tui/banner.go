package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner, fading from warm to cool.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"    _    __ _                 _", "#fde047"},
		{"   / \\  / _| |_ ___ _ __ __ _| | _____      __", "#fbbf24"},
		{"  / _ \\| |_| __/ _ \\ '__/ _` | |/ _ \\ \\ /\\ / /", "#f97316"},
		{" / ___ \\  _| ||  __/ | | (_| | | (_) \\ V  V /", "#ef4444"},
		{"/_/   \\_\\_|  \\__\\___|_|  \\__, |_|\\___/ \\_/\\_/", "#a855f7"},
		{"                         |___/", "#6366f1"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
