package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta asociada a un cliente. Inmutable una vez creada:
// no existe operación de actualización.
type Sale struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}
