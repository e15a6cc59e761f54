package crm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/intellicrm-core/internal/domain"
	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
	"github.com/jhoicas/intellicrm-core/pkg/money"
)

// ListSales devuelve una copia de todas las ventas en el orden en memoria.
func (s *Store) ListSales(ctx context.Context) ([]entity.Sale, error) {
	if err := s.begin(ctx, "sales.list", 200*time.Millisecond); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Sale, len(s.sales))
	copy(out, s.sales)
	return out, nil
}

// ListSalesForCustomer filtra las ventas de un cliente, más recientes primero.
func (s *Store) ListSalesForCustomer(ctx context.Context, customerID string) ([]entity.Sale, error) {
	if err := s.begin(ctx, "sales.list_for_customer", 200*time.Millisecond); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Sale, 0)
	for _, v := range s.sales {
		if v.CustomerID == customerID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// RecordSale registra una venta al frente del libro. Si el cliente existe se
// refresca su lastUpdated; la venta no actualiza ningún agregado del cliente
// (eso es asunto de la capa de lectura).
func (s *Store) RecordSale(ctx context.Context, customerID string, amount decimal.Decimal, date time.Time) (*entity.Sale, error) {
	if customerID == "" || !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if err := s.begin(ctx, "sales.record", 300*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sale := entity.Sale{
		ID:         s.ids.next(kindSale),
		CustomerID: customerID,
		Amount:     amount,
		Date:       date,
	}
	s.sales = append([]entity.Sale{sale}, s.sales...)

	if err := saveCollection(s, keySales, s.sales); err != nil {
		return nil, err
	}
	if err := s.saveIDs(); err != nil {
		return nil, err
	}

	if idx := s.customerIndex(customerID); idx >= 0 {
		s.customers[idx].LastUpdated = s.now()
		if err := saveCollection(s, keyCustomers, s.customers); err != nil {
			return nil, err
		}
	}

	s.log.Debug().Str("sale_id", sale.ID).Str("customer_id", customerID).Msg("venta registrada")
	return &sale, nil
}

// RecordPayment abona un pago al saldo pendiente del cliente (puede quedar
// negativo: no hay piso). Exige que el cliente exista y deja un comentario
// autogenerado describiendo el pago, pasando por el pipeline completo de
// comentarios (incluido el análisis de sentimiento).
func (s *Store) RecordPayment(ctx context.Context, customerID string, amount decimal.Decimal, date time.Time) (*entity.Customer, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if err := s.begin(ctx, "payments.record", 300*time.Millisecond); err != nil {
		return nil, err
	}

	out, err := s.applyBalanceChange(customerID, amount.Neg())
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Payment of %s recorded for %s.", money.FormatINR(amount), date.Format("02/01/2006"))
	if _, err := s.AddRemark(ctx, customerID, text); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordBill carga una factura al saldo pendiente del cliente. Simétrico a
// RecordPayment: exige cliente existente y deja comentario autogenerado.
func (s *Store) RecordBill(ctx context.Context, customerID string, amount decimal.Decimal) (*entity.Customer, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if err := s.begin(ctx, "bills.record", 300*time.Millisecond); err != nil {
		return nil, err
	}

	out, err := s.applyBalanceChange(customerID, amount)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Bill of %s added.", money.FormatINR(amount))
	if _, err := s.AddRemark(ctx, customerID, text); err != nil {
		return nil, err
	}
	return out, nil
}

// applyBalanceChange suma delta al saldo pendiente, refresca lastUpdated y
// persiste clientes, todo bajo el lock. Devuelve una copia del registro.
func (s *Store) applyBalanceChange(customerID string, delta decimal.Decimal) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.customerIndex(customerID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	c := &s.customers[idx]
	c.OutstandingBalance = c.OutstandingBalance.Add(delta)
	c.LastUpdated = s.now()

	if err := saveCollection(s, keyCustomers, s.customers); err != nil {
		return nil, err
	}

	out := *c
	return &out, nil
}
