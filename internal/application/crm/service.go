// Package crm implementa el servicio de datos del CRM: colecciones en memoria
// como fuente de verdad durante la sesión, espejadas al almacén clave-valor
// tras cada mutación (write-through). Todas las operaciones son asíncronas con
// latencia simulada, al estilo de un backend remoto.
package crm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/intellicrm-core/internal/application/ports"
	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
	"github.com/jhoicas/intellicrm-core/internal/domain/repository"
	"github.com/jhoicas/intellicrm-core/pkg/logger"
	"github.com/jhoicas/intellicrm-core/pkg/metrics"
)

// authorLabel autor fijo de los comentarios creados por esta capa.
const authorLabel = "Sales Team"

// Options dependencias y ajustes del Store. Solo el KeyValueStore es
// obligatorio; el resto tiene defaults razonables.
type Options struct {
	// Namespace prefijo de las claves persistidas (default "intellicrm").
	Namespace string
	// LatencyScale multiplica los retardos base de cada operación.
	// 1 reproduce el perfil original; 0 desactiva la latencia (tests).
	LatencyScale float64
	// Sentiment colaborador best-effort de análisis de comentarios (puede ser nil).
	Sentiment ports.SentimentService
	// Logger destino de log estructurado (default: descarta todo).
	Logger *logger.Logger
	// Metrics contadores Prometheus opcionales (nil = sin métricas).
	Metrics *metrics.Metrics
	// Now reloj inyectable para las pruebas de derivación de metas.
	Now func() time.Time
}

// Store es el servicio de entidades del CRM. Posee sus colecciones y la tabla
// de contadores de ID; la construcción ejecuta el bootstrap exactamente una vez
// por instancia. Un único mutex serializa cada secuencia mutación+persistencia,
// de modo que cada escritura refleja siempre la colección completa y vigente.
type Store struct {
	kv        repository.KeyValueStore
	sentiment ports.SentimentService
	log       *logger.Logger
	met       *metrics.Metrics

	ns    string
	scale float64
	now   func() time.Time

	mu         sync.Mutex
	customers  []entity.Customer
	sales      []entity.Sale
	remarks    []entity.Remark
	tasks      []entity.Task
	goals      []entity.Goal
	milestones []entity.Milestone
	ids        idTable
}

// New construye el Store sobre el almacén dado y ejecuta el bootstrap:
// siembra los datos por defecto solo en las claves ausentes (idempotente,
// nunca pisa datos de usuario), carga las colecciones a memoria y carga o
// reconstruye la tabla de contadores de ID.
func New(kv repository.KeyValueStore, opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	// Instance ID para correlacionar logs de varias instancias (p.ej. tests).
	log = logger.FromZerolog(log.With().Str("store_id", uuid.NewString()[:8]).Logger())

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ns := opts.Namespace
	if ns == "" {
		ns = "intellicrm"
	}

	s := &Store{
		kv:        kv,
		sentiment: opts.Sentiment,
		log:       log,
		met:       opts.Metrics,
		ns:        ns,
		scale:     opts.LatencyScale,
		now:       now,
	}

	if err := s.bootstrap(); err != nil {
		return nil, err
	}

	log.Info().
		Str("namespace", ns).
		Int("customers", len(s.customers)).
		Int("sales", len(s.sales)).
		Msg("store inicializado")
	return s, nil
}

// begin registra la operación en métricas y aplica la latencia simulada.
// Devuelve el error del contexto si este se cancela durante la espera.
func (s *Store) begin(ctx context.Context, op string, base time.Duration) error {
	s.met.Operation(op)
	d := time.Duration(float64(base) * s.scale)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
