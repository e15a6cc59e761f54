package crm_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/intellicrm-core/internal/application/dto"
	"github.com/jhoicas/intellicrm-core/internal/domain"
)

func TestRecordSale_PrependeYRefrescaCliente(t *testing.T) {
	s, _ := newTestStore(t)

	before, err := s.GetCustomer(ctxb(), "2")
	require.NoError(t, err)
	require.NotNil(t, before)

	sale, err := s.RecordSale(ctxb(), "2", decimal.NewFromInt(7500), time.Now())
	require.NoError(t, err)

	all, err := s.ListSales(ctxb())
	require.NoError(t, err)
	assert.Equal(t, sale.ID, all[0].ID, "la venta nueva queda al frente del libro")

	after, err := s.GetCustomer(ctxb(), "2")
	require.NoError(t, err)
	assert.True(t, after.LastUpdated.After(before.LastUpdated),
		"registrar una venta refresca lastUpdated del cliente")
	assert.True(t, after.SalesThisMonth.Equal(before.SalesThisMonth),
		"la venta no actualiza agregados del cliente: eso es de la capa de lectura")
}

func TestRecordSale_ClienteInexistenteNoFalla(t *testing.T) {
	s, _ := newTestStore(t)

	// La venta se registra aunque el cliente no exista (queda huérfana).
	sale, err := s.RecordSale(ctxb(), "999", decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, sale.ID)
}

func TestRecordPayment_DescuentaSaldoYDejaComentario(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.CreateCustomer(ctxb(), dto.CustomerForm{Name: "Pagos SA", Contact: "+91 3"})
	require.NoError(t, err)

	_, err = s.RecordBill(ctxb(), c.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)

	remarksBefore, err := s.ListRemarksForCustomer(ctxb(), c.ID)
	require.NoError(t, err)

	updated, err := s.RecordPayment(ctxb(), c.ID, decimal.NewFromInt(500), time.Now())
	require.NoError(t, err)
	assert.True(t, updated.OutstandingBalance.Equal(decimal.NewFromInt(500)),
		"1000 de factura menos 500 de pago deja saldo 500")

	remarks, err := s.ListRemarksForCustomer(ctxb(), c.ID)
	require.NoError(t, err)
	require.Len(t, remarks, len(remarksBefore)+1, "el pago deja exactamente un comentario nuevo")
	assert.True(t, strings.Contains(remarks[0].Remark, "₹500"),
		"el comentario autogenerado menciona el monto: %q", remarks[0].Remark)
	assert.Contains(t, remarks[0].Remark, "Payment")
}

func TestRecordPayment_SaldoPuedeQuedarNegativo(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.CreateCustomer(ctxb(), dto.CustomerForm{Name: "Sobrepago", Contact: "+91 4"})
	require.NoError(t, err)

	updated, err := s.RecordPayment(ctxb(), c.ID, decimal.NewFromInt(300), time.Now())
	require.NoError(t, err)
	assert.True(t, updated.OutstandingBalance.Equal(decimal.NewFromInt(-300)),
		"no hay piso: el saldo puede quedar negativo")
}

func TestRecordPayment_ClienteInexistente(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.RecordPayment(ctxb(), "999", decimal.NewFromInt(100), time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound, "el pago exige que el cliente exista")
}

func TestRecordBill_AumentaSaldoYDejaComentario(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.CreateCustomer(ctxb(), dto.CustomerForm{Name: "Facturas SA", Contact: "+91 5"})
	require.NoError(t, err)

	updated, err := s.RecordBill(ctxb(), c.ID, decimal.NewFromInt(12500))
	require.NoError(t, err)
	assert.True(t, updated.OutstandingBalance.Equal(decimal.NewFromInt(12500)))

	remarks, err := s.ListRemarksForCustomer(ctxb(), c.ID)
	require.NoError(t, err)
	require.Len(t, remarks, 1)
	assert.Contains(t, remarks[0].Remark, "Bill")
	assert.Contains(t, remarks[0].Remark, "₹12,500", "el monto va con agrupación india")
}

func TestRecordBill_ClienteInexistente(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.RecordBill(ctxb(), "999", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSalesForCustomer_OrdenadasPorFechaDescendente(t *testing.T) {
	s, _ := newTestStore(t)

	now := time.Now()
	_, err := s.RecordSale(ctxb(), "2", decimal.NewFromInt(10), now.Add(-48*time.Hour))
	require.NoError(t, err)
	_, err = s.RecordSale(ctxb(), "2", decimal.NewFromInt(20), now)
	require.NoError(t, err)
	_, err = s.RecordSale(ctxb(), "2", decimal.NewFromInt(30), now.Add(-24*time.Hour))
	require.NoError(t, err)

	sales, err := s.ListSalesForCustomer(ctxb(), "2")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(sales), 3)
	for i := 1; i < len(sales); i++ {
		assert.False(t, sales[i-1].Date.Before(sales[i].Date), "orden por fecha descendente")
	}
	for _, v := range sales {
		assert.Equal(t, "2", v.CustomerID)
	}
}
