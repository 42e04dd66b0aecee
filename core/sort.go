package core

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

type SortKey string

const (
	SortByPosition  SortKey = "position"
	SortByDueDate   SortKey = "due_date"
	SortByPriority  SortKey = "priority"
	SortByCreatedAt SortKey = "created_at"
	SortByUpdatedAt SortKey = "updated_at"
	SortByTitle     SortKey = "title"
	SortByCompleted SortKey = "completed"
	SortByID        SortKey = "id"
)

const SortDesc = "desc"

// Sort is a resolved order. Equal keys are always ordered by ID ascending,
// and missing (NULL) keys always go last, whatever the direction.
type Sort struct {
	Key  SortKey
	Desc bool
}

// keyCompare returns the primary-key comparison of a and b and whether each
// side has a value at all.
type keyCompare func(a, b Task) (c int, aNull, bNull bool)

var sortKeys = map[SortKey]keyCompare{
	SortByPosition: func(a, b Task) (int, bool, bool) {
		return cmp.Compare(a.Position, b.Position), false, false
	},
	SortByDueDate: func(a, b Task) (int, bool, bool) {
		return comparePtr(a.DueDate, b.DueDate, func(x, y time.Time) int { return x.Compare(y) })
	},
	SortByPriority: func(a, b Task) (int, bool, bool) {
		return comparePtr(a.Priority, b.Priority, cmp.Compare[int])
	},
	SortByCreatedAt: func(a, b Task) (int, bool, bool) {
		return a.CreatedAt.Compare(b.CreatedAt), false, false
	},
	SortByUpdatedAt: func(a, b Task) (int, bool, bool) {
		return a.UpdatedAt.Compare(b.UpdatedAt), false, false
	},
	SortByTitle: func(a, b Task) (int, bool, bool) {
		return strings.Compare(a.Title, b.Title), false, false
	},
	SortByCompleted: func(a, b Task) (int, bool, bool) {
		return compareBool(a.Completed, b.Completed), false, false
	},
	SortByID: func(a, b Task) (int, bool, bool) {
		return cmp.Compare(a.ID, b.ID), false, false
	},
}

// ResolveSort maps the raw query parameters to a Sort. An unknown key
// falls back to position; any order other than "desc" means ascending.
func ResolveSort(sortBy, sortOrder string) Sort {
	key := SortKey(strings.TrimSpace(sortBy))
	if _, ok := sortKeys[key]; !ok {
		key = SortByPosition
	}
	return Sort{Key: key, Desc: sortOrder == SortDesc}
}

func (s Sort) Compare(a, b Task) int {
	fn, ok := sortKeys[s.Key]
	if !ok {
		fn = sortKeys[SortByPosition]
	}

	c, aNull, bNull := fn(a, b)
	switch {
	case aNull && bNull:
		c = 0
	case aNull:
		return 1
	case bNull:
		return -1
	case s.Desc:
		c = -c
	}

	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func (s Sort) Apply(tasks []Task) {
	slices.SortFunc(tasks, s.Compare)
}

func comparePtr[T any](a, b *T, fn func(x, y T) int) (int, bool, bool) {
	if a == nil || b == nil {
		return 0, a == nil, b == nil
	}
	return fn(*a, *b), false, false
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
