package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestNewMetricsForTesting(t *testing.T) {
	m := NewMetricsForTesting()

	m.Lookups.WithLabelValues("found").Inc()
	m.Lookups.WithLabelValues("found").Inc()
	m.SpeciesCache.WithLabelValues("hit").Inc()

	assert.InDelta(t, 2, counterValue(t, m.Lookups.WithLabelValues("found")), 0)
	assert.InDelta(t, 1, counterValue(t, m.SpeciesCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 0, counterValue(t, m.NearbyProbes.WithLabelValues("empty")), 0)

	// A second instance is independent and does not panic on registration.
	other := NewMetricsForTesting()
	assert.InDelta(t, 0, counterValue(t, other.Lookups.WithLabelValues("found")), 0)
}
