package entity

// Milestone hito asociado a una meta. Se elimina en cascada al borrar la meta:
// ningún hito debe referenciar una meta inexistente.
type Milestone struct {
	ID        string `json:"id"`
	GoalID    string `json:"goalId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
