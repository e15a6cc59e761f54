package crm

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/intellicrm-core/internal/application/dto"
	"github.com/jhoicas/intellicrm-core/internal/domain"
	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// GoalBoard metas de un cliente con sus hitos asociados.
type GoalBoard struct {
	Goals      []entity.Goal      `json:"goals"`
	Milestones []entity.Milestone `json:"milestones"`
}

// GoalsForCustomer devuelve las metas del cliente con currentAmount y status
// recalculados desde el libro de ventas: los valores persistidos nunca se
// toman como autoritativos. currentAmount suma toda venta del cliente con
// fecha igual o anterior al deadline; el status se deriva del monto y del
// momento actual. Metas ordenadas por deadline descendente; los hitos
// devueltos son exactamente los de las metas listadas.
func (s *Store) GoalsForCustomer(ctx context.Context, customerID string) (*GoalBoard, error) {
	if err := s.begin(ctx, "goals.for_customer", 400*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	goals := make([]entity.Goal, 0)
	for _, g := range s.goals {
		if g.CustomerID != customerID {
			continue
		}

		current := decimal.Zero
		for _, v := range s.sales {
			if v.CustomerID == customerID && !v.Date.After(g.Deadline) {
				current = current.Add(v.Amount)
			}
		}

		g.CurrentAmount = current
		switch {
		case current.GreaterThanOrEqual(g.TargetAmount):
			g.Status = entity.GoalAchieved
		case now.After(g.Deadline):
			g.Status = entity.GoalMissed
		default:
			g.Status = entity.GoalInProgress
		}
		goals = append(goals, g)
	}
	sort.SliceStable(goals, func(i, j int) bool { return goals[i].Deadline.After(goals[j].Deadline) })

	goalIDs := make(map[string]struct{}, len(goals))
	for _, g := range goals {
		goalIDs[g.ID] = struct{}{}
	}
	milestones := make([]entity.Milestone, 0)
	for _, m := range s.milestones {
		if _, ok := goalIDs[m.GoalID]; ok {
			milestones = append(milestones, m)
		}
	}

	return &GoalBoard{Goals: goals, Milestones: milestones}, nil
}

// CreateGoal crea una meta. CurrentAmount inicia en cero y Status en
// InProgress sin importar la entrada: son solo placeholders hasta la primera
// lectura derivada.
func (s *Store) CreateGoal(ctx context.Context, form dto.GoalForm) (*entity.Goal, error) {
	if form.CustomerID == "" || form.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.begin(ctx, "goals.create", 300*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := entity.Goal{
		ID:            s.ids.next(kindGoal),
		CustomerID:    form.CustomerID,
		Title:         form.Title,
		TargetAmount:  form.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      form.Deadline,
		Status:        entity.GoalInProgress,
	}
	s.goals = append([]entity.Goal{g}, s.goals...)

	if err := saveCollection(s, keyGoals, s.goals); err != nil {
		return nil, err
	}
	if err := s.saveIDs(); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGoal elimina la meta y, en la misma operación, todo hito que la
// referencie (la única cascada del modelo). Ambas colecciones se persisten
// bajo el mismo lock; si la escritura de hitos falla después de la de metas,
// los dos valores persistidos quedan inconsistentes y el error se devuelve en
// lugar de ocultarse (el almacén no ofrece transacciones multi-clave).
func (s *Store) DeleteGoal(ctx context.Context, goalID string) error {
	if err := s.begin(ctx, "goals.delete", 300*time.Millisecond); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keptGoals := s.goals[:0:0]
	for _, g := range s.goals {
		if g.ID != goalID {
			keptGoals = append(keptGoals, g)
		}
	}
	s.goals = keptGoals

	keptMilestones := s.milestones[:0:0]
	for _, m := range s.milestones {
		if m.GoalID != goalID {
			keptMilestones = append(keptMilestones, m)
		}
	}
	s.milestones = keptMilestones

	if err := saveCollection(s, keyGoals, s.goals); err != nil {
		return err
	}
	return saveCollection(s, keyMilestones, s.milestones)
}

// CreateMilestone crea un hito con Completed en false. A diferencia del resto
// de entidades, los hitos se agregan al final: su orden es el de creación.
func (s *Store) CreateMilestone(ctx context.Context, form dto.MilestoneForm) (*entity.Milestone, error) {
	if form.GoalID == "" || form.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.begin(ctx, "milestones.create", 200*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := entity.Milestone{
		ID:        s.ids.next(kindMilestone),
		GoalID:    form.GoalID,
		Title:     form.Title,
		Completed: false,
	}
	s.milestones = append(s.milestones, m)

	if err := saveCollection(s, keyMilestones, s.milestones); err != nil {
		return nil, err
	}
	if err := s.saveIDs(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ToggleMilestoneComplete invierte el flag de completado del hito. Un ID
// ausente devuelve (nil, nil) sin tocar la colección.
func (s *Store) ToggleMilestoneComplete(ctx context.Context, id string) (*entity.Milestone, error) {
	if err := s.begin(ctx, "milestones.toggle", 100*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.milestones {
		if s.milestones[i].ID == id {
			s.milestones[i].Completed = !s.milestones[i].Completed
			if err := saveCollection(s, keyMilestones, s.milestones); err != nil {
				return nil, err
			}
			m := s.milestones[i]
			return &m, nil
		}
	}
	return nil, nil
}
