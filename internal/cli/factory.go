package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/afterglow"
	"github.com/aretw0/afterglow/internal/config"
	"github.com/aretw0/afterglow/internal/logging"
	"github.com/aretw0/afterglow/pkg/adapters/loam"
	"github.com/aretw0/afterglow/pkg/adapters/memory"
	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/observability"
	"github.com/aretw0/afterglow/pkg/ports"
	"github.com/aretw0/afterglow/pkg/replay"
	"github.com/prometheus/client_golang/prometheus"
)

// layoutCandidates are looked up in the working directory when no layout is configured.
var layoutCandidates = []string{"layout.yaml", "layout.yml", "layout.json"}

// CreateLogger builds the application logger from the configured level.
func CreateLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// LoadCatalog resolves the configured layout: a Loam directory, a layout file,
// a layout file found by convention in dir, or an empty catalog.
func LoadCatalog(ctx context.Context, cfg config.Config, dir string) (ports.Catalog, error) {
	switch {
	case cfg.Layout.Dir != "":
		return loam.Open(ctx, cfg.Layout.Dir)
	case cfg.Layout.File != "":
		return memory.LoadFile(cfg.Layout.File)
	}

	if path := findLayout(dir); path != "" {
		return memory.LoadFile(path)
	}
	return memory.NewCatalog(nil, nil)
}

// findLayout returns the first conventional layout file present in dir.
func findLayout(dir string) string {
	for _, name := range layoutCandidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// NewTracker wires a tracker with the standard CLI conventions.
// Metrics are registered on reg when enabled; the returned Metrics is nil otherwise.
func NewTracker(cfg config.Config, catalog ports.Catalog, logger *slog.Logger, reg prometheus.Registerer) (*afterglow.Tracker, *observability.Metrics) {
	opts := []afterglow.Option{
		afterglow.WithHistorySize(cfg.HistorySize),
		afterglow.WithLogger(logger),
	}

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, afterglow.WithHooks(createDebugHooks(logger)))
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled && reg != nil {
		metrics = observability.NewMetrics(reg)
		opts = append(opts, afterglow.WithMetrics(metrics))
	}

	return afterglow.New(catalog, opts...), metrics
}

// createDebugHooks logs every tracker notification.
func createDebugHooks(logger *slog.Logger) domain.TrackerHooks {
	return domain.TrackerHooks{
		OnActiveConfigurationChanged: func(ctx context.Context, c domain.Configuration) {
			logger.Debug("configuration changed", "states", c.IDs())
		},
		OnActiveRegionChanged: func(ctx context.Context, r domain.Rect) {
			logger.Debug("region changed", "region", r.String())
		},
		OnRunningChanged: func(ctx context.Context, running bool) {
			logger.Debug("running changed", "running", running)
		},
		OnTransitionRecorded: func(ctx context.Context, t *domain.Transition) {
			logger.Debug("transition recorded", "transition", t.ID)
		},
		OnConfigurationSkipped: func(ctx context.Context, c domain.Configuration) {
			logger.Debug("configuration unchanged", "states", c.IDs())
		},
		OnHistoryCleared: func(ctx context.Context) {
			logger.Debug("history cleared")
		},
	}
}

// Describe summarizes a catalog for validate output.
func Describe(catalog ports.Catalog) string {
	return fmt.Sprintf("%d states, %d transitions", len(catalog.States()), len(catalog.Transitions()))
}

// CheckTrace resolves every ID mentioned by the trace against the catalog.
func CheckTrace(catalog ports.Catalog, trace *replay.Trace) error {
	for i, evt := range trace.Events {
		for _, id := range evt.States {
			if _, err := catalog.State(id); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
		}
		if evt.Transition != "" {
			if _, err := catalog.Transition(evt.Transition); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
		}
	}
	return nil
}
