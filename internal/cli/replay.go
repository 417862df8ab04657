package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/afterglow/internal/config"
	"github.com/aretw0/afterglow/internal/presentation/graph"
	"github.com/aretw0/afterglow/internal/presentation/tui"
	"github.com/aretw0/afterglow/pkg/replay"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Output formats of the replay command.
const (
	FormatAuto     = "auto"
	FormatHeatmap  = "heatmap"
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
	FormatYAML     = "yaml"
)

// ReplayOptions configures Replay.
type ReplayOptions struct {
	TracePath string
	Dir       string
	Format    string
	Out       *os.File
}

// Replay applies a trace file to a fresh tracker and prints the result.
// A failing event still prints what was applied before returning the error.
func Replay(ctx context.Context, cfg config.Config, opts ReplayOptions) error {
	trace, err := replay.LoadFile(opts.TracePath)
	if err != nil {
		return err
	}
	catalog, err := LoadCatalog(ctx, cfg, opts.Dir)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}

	logger, err := CreateLogger(cfg)
	if err != nil {
		return err
	}
	tracker, _ := NewTracker(cfg, catalog, logger, nil)

	report, runErr := replay.Run(ctx, tracker, trace)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	format := opts.Format
	if format == "" || format == FormatAuto {
		format = FormatYAML
		if tui.IsTerminal(out) {
			format = FormatHeatmap
		}
	}

	if err := writeReport(out, format, report, func() string {
		return graph.GenerateMermaid(catalog.States(), catalog.Transitions(), &report.Snapshot)
	}); err != nil {
		return err
	}
	return runErr
}

func writeReport(w io.Writer, format string, report *replay.Report, mermaid func() string) error {
	switch format {
	case FormatHeatmap:
		tui.NewHeatmap(termenv.EnvColorProfile()).Render(w, report.Snapshot)
	case FormatMarkdown:
		md := tui.Markdown(report.Name, report.Snapshot)
		if f, ok := w.(*os.File); ok && tui.IsTerminal(f) {
			render, err := tui.NewRenderer(tui.Width(f, 80))
			if err != nil {
				return err
			}
			if md, err = render(md); err != nil {
				return err
			}
		}
		fmt.Fprint(w, md)
	case FormatMermaid:
		fmt.Fprint(w, mermaid())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(report.Snapshot)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
