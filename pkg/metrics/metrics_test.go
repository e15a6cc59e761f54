package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/intellicrm-core/pkg/metrics"
)

func TestMetrics_RegistraContadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Operation("customers.list")
	m.Operation("customers.list")
	m.Persist("intellicrm_customers")

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			byName[mf.GetName()] += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, byName["intellicrm_store_operations_total"])
	assert.Equal(t, 1.0, byName["intellicrm_store_persisted_writes_total"])
}

func TestMetrics_NilEsSeguro(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.Operation("x")
		m.Persist("y")
	})
}
