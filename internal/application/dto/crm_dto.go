package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// CustomerForm datos de entrada para crear un cliente. El ID, el avatar y las
// cifras numéricas los asigna el servicio.
type CustomerForm struct {
	Name             string      `json:"name"`
	Contact          string      `json:"contact"`
	AlternateContact string      `json:"alternateContact,omitempty"`
	State            string      `json:"state"`
	District         string      `json:"district"`
	Tier             entity.Tier `json:"tier"`
}

// CustomerPatch actualización parcial de un cliente: solo los campos no nil
// se aplican sobre el registro existente.
type CustomerPatch struct {
	Name             *string      `json:"name,omitempty"`
	Contact          *string      `json:"contact,omitempty"`
	AlternateContact *string      `json:"alternateContact,omitempty"`
	State            *string      `json:"state,omitempty"`
	District         *string      `json:"district,omitempty"`
	Tier             *entity.Tier `json:"tier,omitempty"`
}

// BulkCustomer payload de carga masiva: trae también las cifras comerciales
// (importación desde otra fuente), pero nunca ID, avatar ni lastUpdated.
type BulkCustomer struct {
	Name               string          `json:"name"`
	Contact            string          `json:"contact"`
	AlternateContact   string          `json:"alternateContact,omitempty"`
	State              string          `json:"state"`
	District           string          `json:"district"`
	Tier               entity.Tier     `json:"tier"`
	SalesThisMonth     decimal.Decimal `json:"salesThisMonth"`
	Avg6MoSales        decimal.Decimal `json:"avg6MoSales"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	DaysSinceLastOrder int             `json:"daysSinceLastOrder"`
}

// TaskForm datos de entrada para crear una tarea. Completed siempre inicia en false.
type TaskForm struct {
	CustomerID  string    `json:"customerId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
}

// GoalForm datos de entrada para crear una meta. CurrentAmount y Status se
// ignoran: el servicio los inicializa en cero / InProgress.
type GoalForm struct {
	CustomerID   string          `json:"customerId"`
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Deadline     time.Time       `json:"deadline"`
}

// MilestoneForm datos de entrada para crear un hito de una meta.
type MilestoneForm struct {
	GoalID string `json:"goalId"`
	Title  string `json:"title"`
}
