package core

import (
	"context"
	"strings"
	"time"
)

const (
	MinPriority = 1
	MaxPriority = 5
)

type Service struct {
	db  DB
	now func() time.Time
}

func NewService(db DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
	}
}

// WithClock replaces the clock used for time-relative filters such as overdue.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func isValidPriority(p *int) bool {
	return p == nil || (*p >= MinPriority && *p <= MaxPriority)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Tasks

type Page struct {
	Limit  int
	Offset int
}

func (s *Service) ListTasks(ctx context.Context, id Identity, f TaskFilter, order Sort, page Page) ([]Task, error) {
	if page.Limit < 0 || page.Offset < 0 {
		return nil, ErrTaskInvalidArgs
	}

	q := TaskQuery{
		Scope:      ScopeOf(id),
		Predicates: f.Predicates(s.now()),
		Sort:       order,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}

	tasks, err := s.db.ListTasks(ctx, q)
	if err != nil {
		return nil, err
	}

	out := tasks[:0]
	for _, t := range tasks {
		// the store already scoped the query; this keeps the guarantee local
		if !CanView(id, t.OwnerID) {
			continue
		}
		t.Tags = visibleTags(id, t.Tags)
		out = append(out, t)
	}
	return out, nil
}

// loadTask is the single gate for per-record access: a task the caller
// may not see is reported exactly like a missing one.
func (s *Service) loadTask(ctx context.Context, id Identity, taskID int64) (Task, error) {
	if taskID <= 0 {
		return Task{}, ErrTaskInvalidArgs
	}
	t, err := s.db.GetTask(ctx, taskID)
	if err != nil {
		return Task{}, err
	}
	if !CanMutate(id, t.OwnerID) {
		return Task{}, ErrTaskNotFound
	}
	return t, nil
}

func (s *Service) GetTask(ctx context.Context, id Identity, taskID int64) (Task, error) {
	t, err := s.loadTask(ctx, id, taskID)
	if err != nil {
		return Task{}, err
	}
	t.Tags = visibleTags(id, t.Tags)
	return t, nil
}

func (s *Service) CreateTask(ctx context.Context, id Identity, in TaskInput) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || !isValidPriority(in.Priority) {
		return Task{}, ErrTaskInvalidArgs
	}

	tagIDs, err := s.attachableTags(ctx, id, in.TagIDs)
	if err != nil {
		return Task{}, err
	}

	t := Task{
		Title:       title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		OwnerID:     id.Owner(),
	}

	created, err := s.db.CreateTask(ctx, t, tagIDs)
	if err != nil {
		return Task{}, err
	}
	created.Tags = visibleTags(id, created.Tags)
	return created, nil
}

func (s *Service) UpdateTask(ctx context.Context, id Identity, taskID int64, p TaskPatch) (Task, error) {
	if p.IsEmpty() {
		return Task{}, ErrTaskInvalidArgs
	}

	cur, err := s.loadTask(ctx, id, taskID)
	if err != nil {
		return Task{}, err // ErrTaskNotFound -> NotFound
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.Title = title
	}

	if p.Description.Present {
		cur.Description = p.Description.Ptr()
	}

	if p.Completed != nil {
		cur.Completed = *p.Completed
	}

	if p.Priority.Present {
		prio := p.Priority.Ptr()
		if !isValidPriority(prio) {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.Priority = prio
	}

	if p.DueDate.Present {
		cur.DueDate = p.DueDate.Ptr()
	}

	if p.Position != nil {
		cur.Position = *p.Position
	}

	var tagIDs *[]int64
	if p.TagIDs != nil {
		ids, err := s.attachableTags(ctx, id, *p.TagIDs)
		if err != nil {
			return Task{}, err
		}
		// tags the caller cannot see stay attached
		for _, tag := range cur.Tags {
			if !CanView(id, tag.OwnerID) {
				ids = append(ids, tag.ID)
			}
		}
		tagIDs = &ids
	}

	updated, err := s.db.UpdateTask(ctx, cur, tagIDs)
	if err != nil {
		return Task{}, err
	}
	updated.Tags = visibleTags(id, updated.Tags)
	return updated, nil
}

func (s *Service) ToggleTask(ctx context.Context, id Identity, taskID int64) (Task, error) {
	cur, err := s.loadTask(ctx, id, taskID)
	if err != nil {
		return Task{}, err
	}

	cur.Completed = !cur.Completed

	updated, err := s.db.UpdateTask(ctx, cur, nil)
	if err != nil {
		return Task{}, err
	}
	updated.Tags = visibleTags(id, updated.Tags)
	return updated, nil
}

func (s *Service) DeleteTask(ctx context.Context, id Identity, taskID int64) error {
	if _, err := s.loadTask(ctx, id, taskID); err != nil {
		return err
	}
	return s.db.DeleteTask(ctx, taskID)
}

// attachableTags keeps the requested tag ids that exist and are visible to
// the caller, dropping duplicates. Unknown ids are ignored.
func (s *Service) attachableTags(ctx context.Context, id Identity, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	tags, err := s.db.GetTags(ctx, ids)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(tags))
	out := make([]int64, 0, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag.ID]; dup || !CanView(id, tag.OwnerID) {
			continue
		}
		seen[tag.ID] = struct{}{}
		out = append(out, tag.ID)
	}
	return out, nil
}

// Tags

func (s *Service) ListTags(ctx context.Context, id Identity) ([]Tag, error) {
	return s.db.ListTags(ctx, ScopeOf(id))
}

func (s *Service) CreateTag(ctx context.Context, id Identity, name, color string) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, ErrTagInvalidArgs
	}

	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultTagColor
	}

	return s.db.CreateTag(ctx, Tag{Name: name, Color: color, OwnerID: id.Owner()})
}

func (s *Service) DeleteTag(ctx context.Context, id Identity, tagID int64) error {
	if tagID <= 0 {
		return ErrTagInvalidArgs
	}

	tag, err := s.db.GetTag(ctx, tagID)
	if err != nil {
		return err
	}
	if !CanMutate(id, tag.OwnerID) {
		return ErrTagNotFound
	}

	return s.db.DeleteTag(ctx, tagID)
}
