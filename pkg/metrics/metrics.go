// Package metrics expone contadores Prometheus de la capa de datos:
// operaciones ejecutadas (por nombre) y escrituras persistidas
// (por clave de colección). El paquete es opcional: un *Metrics nil es seguro.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics agrupa los colectores de la capa de datos.
type Metrics struct {
	operations *prometheus.CounterVec
	persists   *prometheus.CounterVec
}

// New crea los colectores y los registra en reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intellicrm",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Operaciones ejecutadas por la capa de datos, por nombre.",
		}, []string{"op"}),
		persists: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intellicrm",
			Subsystem: "store",
			Name:      "persisted_writes_total",
			Help:      "Escrituras completas de colección al almacén clave-valor.",
		}, []string{"key"}),
	}
	reg.MustRegister(m.operations, m.persists)
	return m
}

// Operation registra la ejecución de una operación de la capa de datos.
func (m *Metrics) Operation(op string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op).Inc()
}

// Persist registra una escritura de colección bajo la clave dada.
func (m *Metrics) Persist(key string) {
	if m == nil {
		return
	}
	m.persists.WithLabelValues(key).Inc()
}
