package core_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/parniiyan/To-do-list/core"
)

type fakeDB struct {
	mu sync.RWMutex

	nextTaskID int64
	nextTagID  int64
	clock      time.Time

	tasks    map[int64]core.Task
	tags     map[int64]core.Tag
	taskTags map[int64]map[int64]struct{}

	// failPositions makes UpdatePositions fail before writing anything
	failPositions error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextTaskID: 1,
		nextTagID:  1,
		clock:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		tasks:      make(map[int64]core.Task),
		tags:       make(map[int64]core.Tag),
		taskTags:   make(map[int64]map[int64]struct{}),
	}
}

// tick advances the fake clock so every write gets a distinct timestamp.
func (db *fakeDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

func cloneTask(t core.Task) core.Task {
	out := t
	if t.Description != nil {
		d := *t.Description
		out.Description = &d
	}
	if t.Priority != nil {
		p := *t.Priority
		out.Priority = &p
	}
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	if t.OwnerID != nil {
		o := *t.OwnerID
		out.OwnerID = &o
	}
	out.Tags = nil
	return out
}

// withTags must be called with db.mu held.
func (db *fakeDB) withTags(t core.Task) core.Task {
	out := cloneTask(t)
	out.Tags = []core.Tag{}
	for tagID := range db.taskTags[t.ID] {
		if tag, ok := db.tags[tagID]; ok {
			out.Tags = append(out.Tags, tag)
		}
	}
	sort.Slice(out.Tags, func(i, j int) bool { return out.Tags[i].ID < out.Tags[j].ID })
	return out
}

func (db *fakeDB) setTags(taskID int64, tagIDs []int64) {
	set := make(map[int64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := db.tags[id]; ok {
			set[id] = struct{}{}
		}
	}
	db.taskTags[taskID] = set
}

func (db *fakeDB) Ping(context.Context) error {
	return nil
}

func (db *fakeDB) CreateTask(_ context.Context, t core.Task, tagIDs []int64) (core.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	t.ID = db.nextTaskID
	db.nextTaskID++

	now := db.tick()
	t.CreatedAt = now
	t.UpdatedAt = now

	db.tasks[t.ID] = cloneTask(t)
	db.setTags(t.ID, tagIDs)
	return db.withTags(t), nil
}

func (db *fakeDB) GetTask(_ context.Context, id int64) (core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return db.withTags(t), nil
}

func (db *fakeDB) ListTasks(_ context.Context, q core.TaskQuery) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0, len(db.tasks))
	for _, t := range db.tasks {
		if !q.Scope.Includes(t.OwnerID) {
			continue
		}
		full := db.withTags(t)
		if !core.MatchAll(q.Predicates, full) {
			continue
		}
		out = append(out, full)
	}

	q.Sort.Apply(out)

	if q.Offset > len(out) {
		return []core.Task{}, nil
	}
	if q.Offset > 0 {
		out = out[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (db *fakeDB) UpdateTask(_ context.Context, t core.Task, tagIDs *[]int64) (core.Task, error) {
	if t.ID <= 0 || strings.TrimSpace(t.Title) == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	current, ok := db.tasks[t.ID]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}

	t.OwnerID = current.OwnerID
	t.CreatedAt = current.CreatedAt
	t.UpdatedAt = db.tick()

	db.tasks[t.ID] = cloneTask(t)
	if tagIDs != nil {
		db.setTags(t.ID, *tagIDs)
	}
	return db.withTags(t), nil
}

func (db *fakeDB) DeleteTask(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tasks[id]; !ok {
		return core.ErrTaskNotFound
	}
	delete(db.tasks, id)
	delete(db.taskTags, id)
	return nil
}

func (db *fakeDB) UpdatePositions(_ context.Context, updates []core.PositionUpdate) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.failPositions != nil {
		return db.failPositions
	}

	now := db.tick()
	for _, u := range updates {
		t, ok := db.tasks[u.ID]
		if !ok {
			continue
		}
		t.Position = u.Position
		t.UpdatedAt = now
		db.tasks[u.ID] = t
	}
	return nil
}

func (db *fakeDB) CreateTag(_ context.Context, t core.Tag) (core.Tag, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return core.Tag{}, core.ErrTagInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	t.ID = db.nextTagID
	db.nextTagID++
	t.CreatedAt = db.tick()

	db.tags[t.ID] = t
	return t, nil
}

func (db *fakeDB) GetTag(_ context.Context, id int64) (core.Tag, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.tags[id]
	if !ok {
		return core.Tag{}, core.ErrTagNotFound
	}
	return t, nil
}

func (db *fakeDB) GetTags(_ context.Context, ids []int64) ([]core.Tag, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := []core.Tag{}
	for _, id := range ids {
		if t, ok := db.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (db *fakeDB) ListTags(_ context.Context, s core.Scope) ([]core.Tag, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := []core.Tag{}
	for _, t := range db.tags {
		if s.Includes(t.OwnerID) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeDB) DeleteTag(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tags[id]; !ok {
		return core.ErrTagNotFound
	}
	delete(db.tags, id)
	for _, set := range db.taskTags {
		delete(set, id)
	}
	return nil
}

// seedTask stores t as-is, bypassing the service, the way fixtures insert
// rows with a chosen owner.
func (db *fakeDB) seedTask(t core.Task, tagIDs ...int64) core.Task {
	db.mu.Lock()
	defer db.mu.Unlock()

	t.ID = db.nextTaskID
	db.nextTaskID++
	if t.CreatedAt.IsZero() {
		now := db.tick()
		t.CreatedAt = now
		t.UpdatedAt = now
	}

	db.tasks[t.ID] = cloneTask(t)
	db.setTags(t.ID, tagIDs)
	return db.withTags(t)
}

func (db *fakeDB) seedTag(name string, owner *int64) core.Tag {
	db.mu.Lock()
	defer db.mu.Unlock()

	t := core.Tag{ID: db.nextTagID, Name: name, Color: core.DefaultTagColor, OwnerID: owner, CreatedAt: db.tick()}
	db.nextTagID++
	db.tags[t.ID] = t
	return t
}
