package crm

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/intellicrm-core/internal/application/dto"
	"github.com/jhoicas/intellicrm-core/internal/domain"
	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// ListTasks devuelve una copia de todas las tareas en el orden en memoria.
func (s *Store) ListTasks(ctx context.Context) ([]entity.Task, error) {
	if err := s.begin(ctx, "tasks.list", 300*time.Millisecond); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// ListTasksForCustomer filtra las tareas de un cliente ordenadas por fecha de
// vencimiento ascendente (las más urgentes primero).
func (s *Store) ListTasksForCustomer(ctx context.Context, customerID string) ([]entity.Task, error) {
	if err := s.begin(ctx, "tasks.list_for_customer", 200*time.Millisecond); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Task, 0)
	for _, t := range s.tasks {
		if t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

// CreateTask crea una tarea (general o ligada a un cliente) con Completed en
// false y la inserta al frente de la colección.
func (s *Store) CreateTask(ctx context.Context, form dto.TaskForm) (*entity.Task, error) {
	if form.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.begin(ctx, "tasks.create", 300*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := entity.Task{
		ID:          s.ids.next(kindTask),
		CustomerID:  form.CustomerID,
		Title:       form.Title,
		Description: form.Description,
		DueDate:     form.DueDate,
		Completed:   false,
	}
	s.tasks = append([]entity.Task{t}, s.tasks...)

	if err := saveCollection(s, keyTasks, s.tasks); err != nil {
		return nil, err
	}
	if err := s.saveIDs(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ToggleTaskComplete invierte el flag de completado. Un ID ausente devuelve
// (nil, nil) y deja la colección intacta — no es un error.
func (s *Store) ToggleTaskComplete(ctx context.Context, id string) (*entity.Task, error) {
	if err := s.begin(ctx, "tasks.toggle", 100*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			if err := saveCollection(s, keyTasks, s.tasks); err != nil {
				return nil, err
			}
			t := s.tasks[i]
			return &t, nil
		}
	}
	return nil, nil
}
