package metrics_test

import (
	"errors"
	"testing"
	"time"

	"workforce/shared/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

	metricLoop:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue metricLoop
				}
			}

			return metric.GetCounter().GetValue()
		}
	}

	return 0
}

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.Register()
		metrics.Register()
	})
}

func TestCounters(t *testing.T) {
	metrics.Register()

	metrics.ObserveHTTP("/lodgings/{id}", "GET", 200, 5*time.Millisecond)
	metrics.IncEvent("lodging.bookings", nil)
	metrics.IncEvent("lodging.bookings", errors.New("broker down"))
	metrics.IncAuthFailure("expired")

	assert.GreaterOrEqual(t, counterValue(t, "workforce_lodging_http_requests_total",
		map[string]string{"route": "/lodgings/{id}", "method": "GET", "status": "200"}), 1.0)
	assert.GreaterOrEqual(t, counterValue(t, "workforce_lodging_domain_events_total",
		map[string]string{"topic": "lodging.bookings", "result": "error"}), 1.0)
	assert.GreaterOrEqual(t, counterValue(t, "workforce_lodging_auth_failures_total",
		map[string]string{"reason": "expired"}), 1.0)
}
