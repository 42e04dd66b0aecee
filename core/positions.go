package core

import (
	"context"
	"errors"
)

// ReorderTasks sets the given positions on the tasks the caller may mutate.
// Pairs naming a missing or foreign task are dropped without error so one
// bad id cannot block the rest of the batch. The accepted updates are
// committed together: if the store fails, no position changes.
//
// Positions are taken as given. Picking a value between two neighbours
// (for example their average) is the client's job, as is periodic
// renormalization once values collide or run out of precision; see
// RenormalizePositions.
func (s *Service) ReorderTasks(ctx context.Context, id Identity, items []PositionUpdate) error {
	accepted := make([]PositionUpdate, 0, len(items))

	for _, it := range items {
		if it.ID <= 0 {
			continue
		}
		t, err := s.db.GetTask(ctx, it.ID)
		if err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				continue
			}
			return err
		}
		if !CanMutate(id, t.OwnerID) {
			continue
		}
		accepted = append(accepted, it)
	}

	if len(accepted) == 0 {
		return nil
	}
	return s.db.UpdatePositions(ctx, accepted)
}

// RenormalizePositions rewrites the positions of every task in the caller's
// scope to 1..n, keeping their current order. It is a maintenance
// operation and is never run as part of request handling.
func (s *Service) RenormalizePositions(ctx context.Context, id Identity) (int, error) {
	tasks, err := s.db.ListTasks(ctx, TaskQuery{
		Scope: ScopeOf(id),
		Sort:  Sort{Key: SortByPosition},
	})
	if err != nil {
		return 0, err
	}

	updates := DensePositions(tasks)
	if len(updates) == 0 {
		return 0, nil
	}
	if err := s.db.UpdatePositions(ctx, updates); err != nil {
		return 0, err
	}
	return len(updates), nil
}

// DensePositions assigns 1, 2, 3, ... to tasks in their given order.
func DensePositions(tasks []Task) []PositionUpdate {
	out := make([]PositionUpdate, 0, len(tasks))
	for i, t := range tasks {
		out = append(out, PositionUpdate{ID: t.ID, Position: float64(i + 1)})
	}
	return out
}
