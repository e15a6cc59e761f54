package crm

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// entityKind clase de entidad, usada para elegir contador y prefijo de ID.
type entityKind string

const (
	kindCustomer  entityKind = "customer"
	kindSale      entityKind = "sale"
	kindRemark    entityKind = "remark"
	kindTask      entityKind = "task"
	kindGoal      entityKind = "goal"
	kindMilestone entityKind = "milestone"
)

// idPrefixes prefijo del ID por clase. Los clientes usan enteros pelados;
// el resto lleva una letra delante de los dígitos.
var idPrefixes = map[entityKind]string{
	kindCustomer:  "",
	kindSale:      "s",
	kindRemark:    "r",
	kindTask:      "t",
	kindGoal:      "g",
	kindMilestone: "m",
}

// idTable contadores monótonos por clase de entidad, persistidos como un único
// objeto JSON. Nunca decrementan ni se reutilizan, tampoco tras borrados: eso
// garantiza unicidad de IDs en toda la historia del almacén.
type idTable struct {
	Customer  int64 `json:"customer"`
	Sale      int64 `json:"sale"`
	Remark    int64 `json:"remark"`
	Task      int64 `json:"task"`
	Goal      int64 `json:"goal"`
	Milestone int64 `json:"milestone"`
}

func (t *idTable) counter(k entityKind) *int64 {
	switch k {
	case kindCustomer:
		return &t.Customer
	case kindSale:
		return &t.Sale
	case kindRemark:
		return &t.Remark
	case kindTask:
		return &t.Task
	case kindGoal:
		return &t.Goal
	default:
		return &t.Milestone
	}
}

// next forma el ID con el valor actual del contador y luego incrementa.
// El caller es responsable de persistir la tabla (saveIDs) tras la mutación.
func (t *idTable) next(k entityKind) string {
	c := t.counter(k)
	id := idPrefixes[k] + strconv.FormatInt(*c, 10)
	*c++
	return id
}

// loadIDs carga la tabla de contadores. Si nunca se persistió, cada contador
// inicia en uno más que el sufijo numérico máximo de la colección semilla
// correspondiente. Si el JSON persistido es ilegible, se reconstruye desde las
// colecciones ya cargadas (preservar monotonicidad antes que resetear).
func (s *Store) loadIDs() error {
	key := s.key(keyIDs)
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return err
	}
	if ok {
		var t idTable
		if err := json.Unmarshal(raw, &t); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("tabla de IDs ilegible; se reconstruye desde las colecciones")
			s.ids = s.rebuildIDs()
			return s.saveIDs()
		}
		s.ids = t
		return nil
	}

	s.ids = idTable{
		Customer:  maxSuffix(seedCustomers(), func(c entity.Customer) string { return c.ID }, "") + 1,
		Sale:      maxSuffix(seedSales(), func(v entity.Sale) string { return v.ID }, "s") + 1,
		Remark:    maxSuffix(seedRemarks(), func(r entity.Remark) string { return r.ID }, "r") + 1,
		Task:      maxSuffix(seedTasks(), func(t entity.Task) string { return t.ID }, "t") + 1,
		Goal:      maxSuffix(seedGoals(), func(g entity.Goal) string { return g.ID }, "g") + 1,
		Milestone: maxSuffix(seedMilestones(), func(m entity.Milestone) string { return m.ID }, "m") + 1,
	}
	return s.saveIDs()
}

// rebuildIDs deriva los contadores del sufijo máximo de cada colección en memoria.
func (s *Store) rebuildIDs() idTable {
	return idTable{
		Customer:  maxSuffix(s.customers, func(c entity.Customer) string { return c.ID }, "") + 1,
		Sale:      maxSuffix(s.sales, func(v entity.Sale) string { return v.ID }, "s") + 1,
		Remark:    maxSuffix(s.remarks, func(r entity.Remark) string { return r.ID }, "r") + 1,
		Task:      maxSuffix(s.tasks, func(t entity.Task) string { return t.ID }, "t") + 1,
		Goal:      maxSuffix(s.goals, func(g entity.Goal) string { return g.ID }, "g") + 1,
		Milestone: maxSuffix(s.milestones, func(m entity.Milestone) string { return m.ID }, "m") + 1,
	}
}

// saveIDs persiste la tabla completa de contadores.
func (s *Store) saveIDs() error {
	raw, err := json.Marshal(s.ids)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key(keyIDs), raw); err != nil {
		s.log.Error().Err(err).Msg("persistencia de la tabla de IDs fallida")
		return err
	}
	s.met.Persist(s.key(keyIDs))
	return nil
}

// maxSuffix devuelve el mayor sufijo numérico de los IDs de la colección,
// quitando antes el prefijo de la clase. Ignora IDs que no parsean.
func maxSuffix[T any](items []T, id func(T) string, prefix string) int64 {
	var best int64
	for _, it := range items {
		raw := strings.TrimPrefix(id(it), prefix)
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		if n > best {
			best = n
		}
	}
	return best
}
