package kvstore

import (
	"sync"

	"github.com/jhoicas/intellicrm-core/internal/domain/repository"
)

var _ repository.KeyValueStore = (*Memory)(nil)

// Memory implementación volátil de KeyValueStore (tests y demos).
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemory crea un almacén en memoria vacío.
func NewMemory() *Memory {
	return &Memory{m: map[string][]byte{}}
}

// Get devuelve el valor bajo key y si la clave existe.
func (s *Memory) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	// Copia defensiva: el caller no debe poder mutar el valor almacenado.
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set escribe el valor completo bajo key.
func (s *Memory) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.m[key] = v
	return nil
}

// Delete elimina la clave (no-op si no existe).
func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Close no hace nada en el adaptador en memoria.
func (s *Memory) Close() error { return nil }
