package core

import "time"

const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// TaskFilter carries the optional listing parameters. Zero values impose
// no constraint. Status values other than StatusCompleted and
// StatusPending are ignored rather than rejected; callers wanting strict
// validation must check the value before it gets here.
type TaskFilter struct {
	Status    string     `json:"status"`
	Priority  *int       `json:"priority"`
	TagID     *int64     `json:"tag_id"`
	DueBefore *time.Time `json:"due_before"`
	DueAfter  *time.Time `json:"due_after"`
	Overdue   bool       `json:"overdue"`
	NoDueDate bool       `json:"no_due_date"`
}

type PredicateKind int

const (
	PredCompleted PredicateKind = iota + 1
	PredPriority
	PredHasTag
	PredDueOnOrBefore
	PredDueOnOrAfter
	PredDueBefore
	PredNoDueDate
)

// Predicate is a single constraint over a task. Only the operand matching
// Kind is meaningful.
type Predicate struct {
	Kind      PredicateKind
	Completed bool
	Priority  int
	TagID     int64
	Time      time.Time
}

// Predicates expands the filter into AND-combined predicates. now is the
// reference instant for the overdue check.
func (f TaskFilter) Predicates(now time.Time) []Predicate {
	var ps []Predicate

	switch f.Status {
	case StatusCompleted:
		ps = append(ps, Predicate{Kind: PredCompleted, Completed: true})
	case StatusPending:
		ps = append(ps, Predicate{Kind: PredCompleted, Completed: false})
	}

	if f.Priority != nil {
		ps = append(ps, Predicate{Kind: PredPriority, Priority: *f.Priority})
	}
	if f.TagID != nil {
		ps = append(ps, Predicate{Kind: PredHasTag, TagID: *f.TagID})
	}
	if f.DueBefore != nil {
		ps = append(ps, Predicate{Kind: PredDueOnOrBefore, Time: *f.DueBefore})
	}
	if f.DueAfter != nil {
		ps = append(ps, Predicate{Kind: PredDueOnOrAfter, Time: *f.DueAfter})
	}
	if f.Overdue {
		ps = append(ps,
			Predicate{Kind: PredCompleted, Completed: false},
			Predicate{Kind: PredDueBefore, Time: now},
		)
	}
	if f.NoDueDate {
		ps = append(ps, Predicate{Kind: PredNoDueDate})
	}

	return ps
}

func (p Predicate) Match(t Task) bool {
	switch p.Kind {
	case PredCompleted:
		return t.Completed == p.Completed
	case PredPriority:
		return t.Priority != nil && *t.Priority == p.Priority
	case PredHasTag:
		for _, tag := range t.Tags {
			if tag.ID == p.TagID {
				return true
			}
		}
		return false
	case PredDueOnOrBefore:
		return t.DueDate != nil && !t.DueDate.After(p.Time)
	case PredDueOnOrAfter:
		return t.DueDate != nil && !t.DueDate.Before(p.Time)
	case PredDueBefore:
		return t.DueDate != nil && t.DueDate.Before(p.Time)
	case PredNoDueDate:
		return t.DueDate == nil
	default:
		return true
	}
}

func MatchAll(ps []Predicate, t Task) bool {
	for _, p := range ps {
		if !p.Match(t) {
			return false
		}
	}
	return true
}

// TaskQuery is what a listing hands to the store: the ownership scope, the
// filter predicates, the order and an optional page.
type TaskQuery struct {
	Scope      Scope
	Predicates []Predicate
	Sort       Sort
	Limit      int
	Offset     int
}
