package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
)

// GameMetricsCollector counts game actions applied to farm sessions
type GameMetricsCollector struct {
	actionsTotal *prometheus.CounterVec
}

// NewGameMetricsCollector creates a new game metrics collector
func NewGameMetricsCollector() *GameMetricsCollector {
	return &GameMetricsCollector{
		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "actions_total",
				Help:      "Total number of game actions by type and outcome",
			},
			[]string{"action", "status"},
		),
	}
}

// Register registers all game metrics with the Prometheus registry
func (c *GameMetricsCollector) Register() error {
	return register(c.actionsTotal)
}

// RecordAction counts one applied or rejected action
func (c *GameMetricsCollector) RecordAction(action string, success bool) {
	c.actionsTotal.WithLabelValues(action, statusLabel(success)).Inc()
}

var _ farm.ActionRecorder = (*GameMetricsCollector)(nil)
