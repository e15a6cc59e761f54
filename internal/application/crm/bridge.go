package crm

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// Sufijos de las claves persistidas. La clave completa es <namespace>_<sufijo>.
const (
	keyCustomers  = "customers"
	keySales      = "sales"
	keyRemarks    = "remarks"
	keyTasks      = "tasks"
	keyGoals      = "goals"
	keyMilestones = "milestones"
	keyIDs        = "ids"
)

func (s *Store) key(suffix string) string {
	return s.ns + "_" + suffix
}

// bootstrap siembra las claves ausentes, carga las colecciones a memoria y
// resuelve la tabla de contadores. Nunca sobreescribe datos ya persistidos.
func (s *Store) bootstrap() error {
	if err := seedIfAbsent(s, keyCustomers, seedCustomers()); err != nil {
		return err
	}
	if err := seedIfAbsent(s, keySales, seedSales()); err != nil {
		return err
	}
	if err := seedIfAbsent(s, keyRemarks, seedRemarks()); err != nil {
		return err
	}
	if err := seedIfAbsent(s, keyTasks, seedTasks()); err != nil {
		return err
	}
	if err := seedIfAbsent(s, keyGoals, seedGoals()); err != nil {
		return err
	}
	if err := seedIfAbsent(s, keyMilestones, seedMilestones()); err != nil {
		return err
	}

	s.customers = loadCollection[entity.Customer](s, keyCustomers)
	s.sales = loadCollection[entity.Sale](s, keySales)
	s.remarks = loadCollection[entity.Remark](s, keyRemarks)
	s.tasks = loadCollection[entity.Task](s, keyTasks)
	s.goals = loadCollection[entity.Goal](s, keyGoals)
	s.milestones = loadCollection[entity.Milestone](s, keyMilestones)

	return s.loadIDs()
}

// seedIfAbsent escribe los datos semilla bajo la clave solo si esta no existe.
func seedIfAbsent[T any](s *Store, suffix string, seed []T) error {
	key := s.key(suffix)
	_, ok, err := s.kv.Get(key)
	if err != nil {
		return fmt.Errorf("bootstrap %s: %w", key, err)
	}
	if ok {
		return nil
	}
	raw, err := json.Marshal(seed)
	if err != nil {
		return fmt.Errorf("serializar semilla %s: %w", key, err)
	}
	if err := s.kv.Set(key, raw); err != nil {
		return fmt.Errorf("sembrar %s: %w", key, err)
	}
	return nil
}

// loadCollection deserializa la colección persistida. Los fallos de lectura o
// de JSON se absorben: se loguea un warning y se devuelve la colección vacía
// (nunca se propagan al caller).
func loadCollection[T any](s *Store, suffix string) []T {
	key := s.key(suffix)
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("lectura del almacén fallida; se usa colección vacía")
		return []T{}
	}
	if !ok {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("JSON persistido inválido; se usa colección vacía")
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

// saveCollection serializa la colección completa y reemplaza el valor
// persistido (sin escrituras incrementales).
func saveCollection[T any](s *Store, suffix string, data []T) error {
	key := s.key(suffix)
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	if err := s.kv.Set(key, raw); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("persistencia fallida")
		return fmt.Errorf("persistir %s: %w", key, err)
	}
	s.met.Persist(key)
	return nil
}
