package crm_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/intellicrm-core/internal/application/crm"
	"github.com/jhoicas/intellicrm-core/internal/application/dto"
	"github.com/jhoicas/intellicrm-core/internal/application/ports"
	"github.com/jhoicas/intellicrm-core/internal/domain/repository"
	"github.com/jhoicas/intellicrm-core/internal/infrastructure/kvstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestStore crea un Store sin latencia sobre un almacén en memoria nuevo.
func newTestStore(t *testing.T) (*crm.Store, repository.KeyValueStore) {
	t.Helper()
	kv := kvstore.NewMemory()
	return reopenStore(t, kv), kv
}

// reopenStore construye un Store sobre un almacén existente (simula reiniciar
// la sesión conservando lo persistido).
func reopenStore(t *testing.T, kv repository.KeyValueStore) *crm.Store {
	t.Helper()
	s, err := crm.New(kv, crm.Options{LatencyScale: 0})
	require.NoError(t, err)
	return s
}

// fakeSentiment implementación controlable del colaborador de sentimiento.
type fakeSentiment struct {
	res   *ports.SentimentResult
	err   error
	calls int
}

func (f *fakeSentiment) AnalyzeRemark(_ context.Context, _ string) (*ports.SentimentResult, error) {
	f.calls++
	return f.res, f.err
}

func ctxb() context.Context { return context.Background() }

// ──────────────────────────────────────────────────────────────────────────────
// Bootstrap
// ──────────────────────────────────────────────────────────────────────────────

func TestBootstrap_SiembraSoloEnPrimerArranque(t *testing.T) {
	s, kv := newTestStore(t)

	before, err := s.ListCustomers(ctxb())
	require.NoError(t, err)
	require.NotEmpty(t, before, "el primer arranque debe sembrar clientes")

	// Alta de un cliente propio y segundo bootstrap sobre el mismo almacén.
	created, err := s.CreateCustomer(ctxb(), dto.CustomerForm{Name: "Nuevo", Contact: "+91 1"})
	require.NoError(t, err)

	s2 := reopenStore(t, kv)
	after, err := s2.ListCustomers(ctxb())
	require.NoError(t, err)

	assert.Len(t, after, len(before)+1, "el segundo bootstrap no debe re-sembrar ni pisar datos")
	assert.Equal(t, created.ID, after[0].ID, "el cliente creado debe sobrevivir al reinicio")
}

func TestBootstrap_JSONCorruptoCaeAColeccionVacia(t *testing.T) {
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set("intellicrm_customers", []byte("{esto no es json")))

	// La construcción no debe fallar: la lectura corrupta se absorbe.
	s := reopenStore(t, kv)

	customers, err := s.ListCustomers(ctxb())
	require.NoError(t, err)
	assert.Empty(t, customers, "un valor persistido ilegible se trata como colección vacía")

	// El resto de colecciones (ausentes) sí se siembra con normalidad.
	sales, err := s.ListSales(ctxb())
	require.NoError(t, err)
	assert.NotEmpty(t, sales)
}

func TestBootstrap_RoundTripReproduceLasColecciones(t *testing.T) {
	s, kv := newTestStore(t)

	_, err := s.CreateCustomer(ctxb(), dto.CustomerForm{Name: "Round Trip", Contact: "+91 2", State: "Kerala"})
	require.NoError(t, err)

	s2 := reopenStore(t, kv)

	a, err := s.ListCustomers(ctxb())
	require.NoError(t, err)
	b, err := s2.ListCustomers(ctxb())
	require.NoError(t, err)

	// Igualdad campo a campo vía la forma serializada (evita comparar la
	// representación interna de los decimales).
	assert.Equal(t, mustJSON(t, a), mustJSON(t, b))
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación de IDs
// ──────────────────────────────────────────────────────────────────────────────

func TestIDs_MonotonosInclusoTrasBorrados(t *testing.T) {
	s, _ := newTestStore(t)

	c1, err := s.CreateCustomer(ctxb(), dto.CustomerForm{Name: "A", Contact: "1"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteCustomer(ctxb(), c1.ID))

	c2, err := s.CreateCustomer(ctxb(), dto.CustomerForm{Name: "B", Contact: "2"})
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID, "un ID nunca se reutiliza, ni tras un borrado")
	assert.Greater(t, c2.ID, c1.ID, "los IDs de cliente crecen estrictamente")
}

func TestIDs_PersistenEntreSesiones(t *testing.T) {
	s, kv := newTestStore(t)

	c1, err := s.CreateCustomer(ctxb(), dto.CustomerForm{Name: "A", Contact: "1"})
	require.NoError(t, err)

	s2 := reopenStore(t, kv)
	c2, err := s2.CreateCustomer(ctxb(), dto.CustomerForm{Name: "B", Contact: "2"})
	require.NoError(t, err)

	assert.Greater(t, c2.ID, c1.ID, "el contador persiste: la nueva sesión continúa la numeración")
}

func TestIDs_PrefijosPorClaseDeEntidad(t *testing.T) {
	s, _ := newTestStore(t)

	task, err := s.CreateTask(ctxb(), dto.TaskForm{Title: "x"})
	require.NoError(t, err)
	assert.Regexp(t, `^t\d+$`, task.ID)

	goal, err := s.CreateGoal(ctxb(), dto.GoalForm{CustomerID: "1", Title: "x"})
	require.NoError(t, err)
	assert.Regexp(t, `^g\d+$`, goal.ID)

	milestone, err := s.CreateMilestone(ctxb(), dto.MilestoneForm{GoalID: goal.ID, Title: "x"})
	require.NoError(t, err)
	assert.Regexp(t, `^m\d+$`, milestone.ID)

	customer, err := s.CreateCustomer(ctxb(), dto.CustomerForm{Name: "x", Contact: "1"})
	require.NoError(t, err)
	assert.Regexp(t, `^\d+$`, customer.ID, "los clientes usan enteros pelados, sin prefijo")
}

func TestIDs_TablaCorruptaSeReconstruye(t *testing.T) {
	s, kv := newTestStore(t)

	c1, err := s.CreateCustomer(ctxb(), dto.CustomerForm{Name: "A", Contact: "1"})
	require.NoError(t, err)

	// Corromper la tabla persistida y reabrir.
	require.NoError(t, kv.Set("intellicrm_ids", []byte("not-json")))
	s2 := reopenStore(t, kv)

	c2, err := s2.CreateCustomer(ctxb(), dto.CustomerForm{Name: "B", Contact: "2"})
	require.NoError(t, err)
	assert.Greater(t, c2.ID, c1.ID, "la reconstrucción parte del sufijo máximo ya usado")
}
