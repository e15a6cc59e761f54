package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/intellicrm-core/internal/application/dto"
	"github.com/jhoicas/intellicrm-core/internal/domain"
	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// avatarFor deriva la referencia de avatar del ID recién asignado.
func avatarFor(id string) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%s", id)
}

// ListCustomers devuelve una copia defensiva de todos los clientes, sin
// filtrar, en el orden en memoria (más recientes primero).
func (s *Store) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	if err := s.begin(ctx, "customers.list", 500*time.Millisecond); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Customer, len(s.customers))
	copy(out, s.customers)
	return out, nil
}

// GetCustomer busca un cliente por ID. Un ID ausente no es error: devuelve
// (nil, nil).
func (s *Store) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	if err := s.begin(ctx, "customers.get", 100*time.Millisecond); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			c := s.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

// CreateCustomer da de alta un cliente: asigna ID y avatar, inicia las cifras
// comerciales en cero y lo inserta al frente de la colección.
func (s *Store) CreateCustomer(ctx context.Context, form dto.CustomerForm) (*entity.Customer, error) {
	if form.Name == "" || form.Contact == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.begin(ctx, "customers.create", 400*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids.next(kindCustomer)
	c := entity.Customer{
		ID:                 id,
		Avatar:             avatarFor(id),
		Name:               form.Name,
		Contact:            form.Contact,
		AlternateContact:   form.AlternateContact,
		State:              form.State,
		District:           form.District,
		Tier:               form.Tier,
		SalesThisMonth:     decimal.Zero,
		Avg6MoSales:        decimal.Zero,
		OutstandingBalance: decimal.Zero,
		DaysSinceLastOrder: 0,
		LastUpdated:        s.now(),
	}
	s.customers = append([]entity.Customer{c}, s.customers...)

	if err := saveCollection(s, keyCustomers, s.customers); err != nil {
		return nil, err
	}
	if err := s.saveIDs(); err != nil {
		return nil, err
	}

	s.log.Debug().Str("customer_id", id).Str("name", c.Name).Msg("cliente creado")
	return &c, nil
}

// UpdateCustomer aplica una actualización parcial: solo los campos no nil del
// patch se copian sobre el registro. Falla con ErrNotFound si el ID no existe
// y siempre refresca lastUpdated.
func (s *Store) UpdateCustomer(ctx context.Context, id string, patch dto.CustomerPatch) (*entity.Customer, error) {
	if err := s.begin(ctx, "customers.update", 300*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.customerIndex(id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	c := &s.customers[idx]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Contact != nil {
		c.Contact = *patch.Contact
	}
	if patch.AlternateContact != nil {
		c.AlternateContact = *patch.AlternateContact
	}
	if patch.State != nil {
		c.State = *patch.State
	}
	if patch.District != nil {
		c.District = *patch.District
	}
	if patch.Tier != nil {
		c.Tier = *patch.Tier
	}
	c.LastUpdated = s.now()

	if err := saveCollection(s, keyCustomers, s.customers); err != nil {
		return nil, err
	}

	out := *c
	return &out, nil
}

// DeleteCustomer elimina por ID; un ID ausente es no-op, no error. No hay
// cascada hacia ventas, comentarios ni tareas del cliente: los huérfanos
// permanecen (limitación conocida del modelo original).
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.begin(ctx, "customers.delete", 500*time.Millisecond); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.customers[:0:0]
	for _, c := range s.customers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.customers = kept

	return saveCollection(s, keyCustomers, s.customers)
}

// BulkCreateCustomers da de alta un lote completo: un ID por payload en el
// orden de entrada, todos con el mismo timestamp de creación, y el lote entero
// antepuesto a la colección en una sola escritura persistida.
func (s *Store) BulkCreateCustomers(ctx context.Context, batch []dto.BulkCustomer) ([]entity.Customer, error) {
	if err := s.begin(ctx, "customers.bulk_create", time.Second); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	added := make([]entity.Customer, 0, len(batch))
	for _, in := range batch {
		id := s.ids.next(kindCustomer)
		added = append(added, entity.Customer{
			ID:                 id,
			Avatar:             avatarFor(id),
			Name:               in.Name,
			Contact:            in.Contact,
			AlternateContact:   in.AlternateContact,
			State:              in.State,
			District:           in.District,
			Tier:               in.Tier,
			SalesThisMonth:     in.SalesThisMonth,
			Avg6MoSales:        in.Avg6MoSales,
			OutstandingBalance: in.OutstandingBalance,
			DaysSinceLastOrder: in.DaysSinceLastOrder,
			LastUpdated:        now,
		})
	}
	s.customers = append(append([]entity.Customer{}, added...), s.customers...)

	if err := saveCollection(s, keyCustomers, s.customers); err != nil {
		return nil, err
	}
	if err := s.saveIDs(); err != nil {
		return nil, err
	}

	s.log.Info().Int("count", len(added)).Msg("carga masiva de clientes")
	return added, nil
}

// customerIndex busca el índice del cliente; -1 si no existe.
// El caller debe tener tomado el mutex.
func (s *Store) customerIndex(id string) int {
	for i := range s.customers {
		if s.customers[i].ID == id {
			return i
		}
	}
	return -1
}
