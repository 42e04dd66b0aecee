package core_test

import (
	"testing"
	"time"

	"github.com/parniiyan/To-do-list/core"
)

func TestTaskFilterPredicates(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	due := now.Add(-time.Hour)
	tag := core.Tag{ID: 7}

	base := core.Task{ID: 1, Title: "t", Priority: intPtr(3), DueDate: timePtr(due), Tags: []core.Tag{tag}}
	done := base
	done.Completed = true
	noDue := base
	noDue.DueDate = nil

	tests := []struct {
		name   string
		filter core.TaskFilter
		task   core.Task
		want   bool
	}{
		{"empty_filter", core.TaskFilter{}, base, true},
		{"status_pending", core.TaskFilter{Status: core.StatusPending}, base, true},
		{"status_completed", core.TaskFilter{Status: core.StatusCompleted}, base, false},
		{"unknown_status_ignored", core.TaskFilter{Status: "whatever"}, done, true},
		{"priority_match", core.TaskFilter{Priority: intPtr(3)}, base, true},
		{"priority_miss", core.TaskFilter{Priority: intPtr(4)}, base, false},
		{"priority_on_null", core.TaskFilter{Priority: intPtr(3)}, core.Task{ID: 2}, false},
		{"tag_match", core.TaskFilter{TagID: int64Ptr(7)}, base, true},
		{"tag_miss", core.TaskFilter{TagID: int64Ptr(8)}, base, false},
		{"due_before_inclusive", core.TaskFilter{DueBefore: timePtr(due)}, base, true},
		{"due_after_inclusive", core.TaskFilter{DueAfter: timePtr(due)}, base, true},
		{"due_after_later", core.TaskFilter{DueAfter: timePtr(now)}, base, false},
		{"due_bound_on_null", core.TaskFilter{DueBefore: timePtr(now)}, noDue, false},
		{"overdue", core.TaskFilter{Overdue: true}, base, true},
		{"overdue_completed", core.TaskFilter{Overdue: true}, done, false},
		{"overdue_no_due", core.TaskFilter{Overdue: true}, noDue, false},
		{"no_due_date", core.TaskFilter{NoDueDate: true}, noDue, true},
		{"no_due_date_miss", core.TaskFilter{NoDueDate: true}, base, false},
		{"conjunction", core.TaskFilter{Status: core.StatusPending, Priority: intPtr(3), TagID: int64Ptr(7)}, base, true},
		{"conjunction_one_fails", core.TaskFilter{Status: core.StatusPending, Priority: intPtr(1), TagID: int64Ptr(7)}, base, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := core.MatchAll(tc.filter.Predicates(now), tc.task)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTaskFilterPredicates_OverdueIsStrict(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	task := core.Task{ID: 1, DueDate: timePtr(now)}

	if core.MatchAll(core.TaskFilter{Overdue: true}.Predicates(now), task) {
		t.Fatalf("a task due exactly now is not overdue")
	}
}
