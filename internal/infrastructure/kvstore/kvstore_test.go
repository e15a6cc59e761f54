package kvstore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/intellicrm-core/internal/domain/repository"
	"github.com/jhoicas/intellicrm-core/internal/infrastructure/kvstore"
)

// Los dos adaptadores deben cumplir el mismo contrato, así que las pruebas
// corren contra ambos.
func adapters(t *testing.T) map[string]repository.KeyValueStore {
	t.Helper()
	sq, err := kvstore.NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]repository.KeyValueStore{
		"memory": kvstore.NewMemory(),
		"sqlite": sq,
	}
}

func TestKeyValueStore_GetClaveInexistente(t *testing.T) {
	for name, kv := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := kv.Get("no-existe")
			require.NoError(t, err)
			assert.False(t, ok, "una clave nunca escrita no debe existir")
			assert.Nil(t, v)
		})
	}
}

func TestKeyValueStore_SetReemplazaValor(t *testing.T) {
	for name, kv := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set("k", []byte(`["a"]`)))
			require.NoError(t, kv.Set("k", []byte(`["a","b"]`)))

			v, ok, err := kv.Get("k")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `["a","b"]`, string(v), "Set debe reemplazar el valor completo")
		})
	}
}

func TestKeyValueStore_DeleteEsIdempotente(t *testing.T) {
	for name, kv := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set("k", []byte("v")))
			require.NoError(t, kv.Delete("k"))
			require.NoError(t, kv.Delete("k"), "borrar una clave inexistente no es error")

			_, ok, err := kv.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSQLite_PersisteEntreAperturas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	sq, err := kvstore.NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, sq.Set("intellicrm_customers", []byte(`[{"id":"1"}]`)))
	require.NoError(t, sq.Close())

	// Reabrir el archivo debe encontrar el valor escrito por la instancia anterior.
	sq2, err := kvstore.NewSQLite(path)
	require.NoError(t, err)
	defer sq2.Close()

	v, ok, err := sq2.Get("intellicrm_customers")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(v))
}
