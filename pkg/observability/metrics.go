package observability

import (
	"context"

	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "afterglow"

// Metrics holds the collectors updated by tracker hooks.
type Metrics struct {
	ConfigurationsRecorded prometheus.Counter
	ConfigurationsSkipped  prometheus.Counter
	TransitionsRecorded    *prometheus.CounterVec
	RegionChanges          prometheus.Counter
	HistoryClears          prometheus.Counter
	Running                prometheus.Gauge
	HistoryLength          *prometheus.GaugeVec
	HistoryCapacity        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
// A nil registerer leaves them unregistered, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ConfigurationsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "configurations_recorded_total",
			Help:      "Total number of configurations pushed into the history",
		}),
		ConfigurationsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "configurations_skipped_total",
			Help:      "Total number of configurations dropped as duplicates of the active one",
		}),
		TransitionsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_recorded_total",
			Help:      "Total number of fired transitions recorded",
		}, []string{"transition_id"}),
		RegionChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "active_region_changes_total",
			Help:      "Total number of active region changes",
		}),
		HistoryClears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_clears_total",
			Help:      "Total number of history resets",
		}),
		Running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "running",
			Help:      "1 while the observed machine is running",
		}),
		HistoryLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_length",
			Help:      "Number of retained entries per history",
		}, []string{"history"}),
		HistoryCapacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_capacity",
			Help:      "Configured capacity shared by both histories",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.ConfigurationsRecorded,
			m.ConfigurationsSkipped,
			m.TransitionsRecorded,
			m.RegionChanges,
			m.HistoryClears,
			m.Running,
			m.HistoryLength,
			m.HistoryCapacity,
		)
	}
	return m
}

// Hooks returns tracker hooks that update the counters.
func (m *Metrics) Hooks() domain.TrackerHooks {
	return domain.TrackerHooks{
		OnActiveConfigurationChanged: func(ctx context.Context, _ domain.Configuration) {
			m.ConfigurationsRecorded.Inc()
		},
		OnConfigurationSkipped: func(ctx context.Context, _ domain.Configuration) {
			m.ConfigurationsSkipped.Inc()
		},
		OnTransitionRecorded: func(ctx context.Context, tr *domain.Transition) {
			m.TransitionsRecorded.WithLabelValues(tr.ID).Inc()
		},
		OnActiveRegionChanged: func(ctx context.Context, _ domain.Rect) {
			m.RegionChanges.Inc()
		},
		OnHistoryCleared: func(ctx context.Context) {
			m.HistoryClears.Inc()
		},
		OnRunningChanged: func(ctx context.Context, running bool) {
			if running {
				m.Running.Set(1)
				return
			}
			m.Running.Set(0)
		},
	}
}

// ObserveHistory updates the length and capacity gauges.
func (m *Metrics) ObserveHistory(configurations, transitions, capacity int) {
	m.HistoryLength.WithLabelValues("configurations").Set(float64(configurations))
	m.HistoryLength.WithLabelValues("transitions").Set(float64(transitions))
	m.HistoryCapacity.Set(float64(capacity))
}
