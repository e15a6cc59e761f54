package entity

import "time"

// Task tarea de seguimiento, opcionalmente ligada a un cliente (CustomerID
// vacío = tarea general). Solo muta vía creación o toggle de completado.
type Task struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customerId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
}
