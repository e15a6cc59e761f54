package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus estado de una meta de ventas.
type GoalStatus string

const (
	GoalInProgress GoalStatus = "InProgress"
	GoalAchieved   GoalStatus = "Achieved"
	GoalMissed     GoalStatus = "Missed"
)

// Goal meta de ventas de un cliente. CurrentAmount y Status se persisten pero
// no son autoritativos: se recalculan desde el libro de ventas en cada lectura.
type Goal struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      time.Time       `json:"deadline"`
	Status        GoalStatus      `json:"status"`
}
