package core_test

import (
	"testing"
	"time"

	"github.com/parniiyan/To-do-list/core"
)

func TestResolveSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		by, order string
		want      core.Sort
	}{
		{"", "", core.Sort{Key: core.SortByPosition}},
		{"priority", "desc", core.Sort{Key: core.SortByPriority, Desc: true}},
		{"due_date", "asc", core.Sort{Key: core.SortByDueDate}},
		{"due_date", "DESC", core.Sort{Key: core.SortByDueDate}},
		{"password", "desc", core.Sort{Key: core.SortByPosition, Desc: true}},
		{"title; DROP TABLE tasks", "", core.Sort{Key: core.SortByPosition}},
	}

	for _, tc := range tests {
		if got := core.ResolveSort(tc.by, tc.order); got != tc.want {
			t.Fatalf("ResolveSort(%q, %q): expected %+v, got %+v", tc.by, tc.order, tc.want, got)
		}
	}
}

func TestSortApply_TieBreakByID(t *testing.T) {
	t.Parallel()

	tasks := []core.Task{
		{ID: 3, Position: 1},
		{ID: 1, Position: 1},
		{ID: 2, Position: 0},
	}

	core.Sort{Key: core.SortByPosition}.Apply(tasks)
	if want := []int64{2, 1, 3}; !equalIDs(taskIDs(tasks), want) {
		t.Fatalf("asc: expected %v, got %v", want, taskIDs(tasks))
	}

	core.Sort{Key: core.SortByPosition, Desc: true}.Apply(tasks)
	if want := []int64{1, 3, 2}; !equalIDs(taskIDs(tasks), want) {
		t.Fatalf("desc: expected %v, got %v", want, taskIDs(tasks))
	}
}

func TestSortApply_NullsLast(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []core.Task{
		{ID: 1},
		{ID: 2, Priority: intPtr(1), DueDate: timePtr(day.Add(48 * time.Hour))},
		{ID: 3, Priority: intPtr(5), DueDate: timePtr(day)},
		{ID: 4},
	}

	for _, tc := range []struct {
		sort core.Sort
		want []int64
	}{
		{core.Sort{Key: core.SortByPriority}, []int64{2, 3, 1, 4}},
		{core.Sort{Key: core.SortByPriority, Desc: true}, []int64{3, 2, 1, 4}},
		{core.Sort{Key: core.SortByDueDate}, []int64{3, 2, 1, 4}},
		{core.Sort{Key: core.SortByDueDate, Desc: true}, []int64{2, 3, 1, 4}},
	} {
		got := append([]core.Task(nil), tasks...)
		tc.sort.Apply(got)
		if !equalIDs(taskIDs(got), tc.want) {
			t.Fatalf("%+v: expected %v, got %v", tc.sort, tc.want, taskIDs(got))
		}
	}
}

func TestSortApply_TitleAndCompleted(t *testing.T) {
	t.Parallel()

	tasks := []core.Task{
		{ID: 1, Title: "b", Completed: true},
		{ID: 2, Title: "a"},
		{ID: 3, Title: "c", Completed: true},
	}

	core.Sort{Key: core.SortByTitle}.Apply(tasks)
	if want := []int64{2, 1, 3}; !equalIDs(taskIDs(tasks), want) {
		t.Fatalf("title: expected %v, got %v", want, taskIDs(tasks))
	}

	core.Sort{Key: core.SortByCompleted}.Apply(tasks)
	if want := []int64{2, 1, 3}; !equalIDs(taskIDs(tasks), want) {
		t.Fatalf("completed: expected %v, got %v", want, taskIDs(tasks))
	}
}
