package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier clasificación comercial del cliente. No afecta la lógica de esta capa;
// la consume solo la presentación.
type Tier string

const (
	TierPlatinum Tier = "Platinum"
	TierGold     Tier = "Gold"
	TierSilver   Tier = "Silver"
	TierBronze   Tier = "Bronze"
)

// Customer representa un cliente del CRM. Los tags json son la forma
// persistida en el almacén clave-valor.
type Customer struct {
	ID                 string          `json:"id"`
	Avatar             string          `json:"avatar"`
	Name               string          `json:"name"`
	Contact            string          `json:"contact"`
	AlternateContact   string          `json:"alternateContact,omitempty"`
	State              string          `json:"state"`
	District           string          `json:"district"`
	Tier               Tier            `json:"tier"`
	SalesThisMonth     decimal.Decimal `json:"salesThisMonth"`
	Avg6MoSales        decimal.Decimal `json:"avg6MoSales"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	DaysSinceLastOrder int             `json:"daysSinceLastOrder"`
	LastUpdated        time.Time       `json:"lastUpdated"`
}
