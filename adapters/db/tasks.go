package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/parniiyan/To-do-list/core"
)

const taskColumns = `id, title, description, completed, priority, due_date, position, user_id, created_at, updated_at`

type sortColumn struct {
	expr     string
	nullable bool
}

var sortColumns = map[core.SortKey]sortColumn{
	core.SortByPosition:  {expr: "position"},
	core.SortByDueDate:   {expr: "due_date", nullable: true},
	core.SortByPriority:  {expr: "priority", nullable: true},
	core.SortByCreatedAt: {expr: "created_at"},
	core.SortByUpdatedAt: {expr: "updated_at"},
	core.SortByTitle:     {expr: "title"},
	core.SortByCompleted: {expr: "completed"},
	core.SortByID:        {expr: "id"},
}

func (db *DB) CreateTask(ctx context.Context, t core.Task, tagIDs []int64) (core.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	q := db.conn.Rebind(`
		INSERT INTO tasks(title, description, completed, priority, due_date, position, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id;
	`)

	// created_at and updated_at share one instant
	now := db.stamp()

	var out core.Task
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		var id int64
		err := tx.QueryRowxContext(ctx, q,
			t.Title, t.Description, t.Completed, t.Priority, timestampPtr(t.DueDate), t.Position, t.OwnerID, now, now).
			Scan(&id)
		if err != nil {
			return err
		}
		if err := db.replaceTaskTags(ctx, tx, id, tagIDs); err != nil {
			return err
		}
		out, err = db.getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return core.Task{}, core.ErrTagNotFound
		}
		if isCheckViolation(err) {
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		return core.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return out, nil
}

func (db *DB) GetTask(ctx context.Context, id int64) (core.Task, error) {
	t, err := db.getTask(ctx, db.conn, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (db *DB) getTask(ctx context.Context, q sqlx.QueryerContext, id int64) (core.Task, error) {
	var t core.Task
	if err := sqlx.GetContext(ctx, q, &t, db.conn.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id); err != nil {
		return core.Task{}, err
	}
	if err := db.loadTags(ctx, q, []*core.Task{&t}); err != nil {
		return core.Task{}, err
	}
	return t, nil
}

func (db *DB) ListTasks(ctx context.Context, tq core.TaskQuery) ([]core.Task, error) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`)

	if tq.Scope.UserID != nil {
		sb.WriteString(" AND (user_id IS NULL OR user_id = ?)")
		args = append(args, *tq.Scope.UserID)
	} else {
		sb.WriteString(" AND user_id IS NULL")
	}

	for _, p := range tq.Predicates {
		switch p.Kind {
		case core.PredCompleted:
			sb.WriteString(" AND completed = ?")
			args = append(args, p.Completed)
		case core.PredPriority:
			sb.WriteString(" AND priority = ?")
			args = append(args, p.Priority)
		case core.PredHasTag:
			sb.WriteString(" AND EXISTS (SELECT 1 FROM task_tags tt WHERE tt.task_id = tasks.id AND tt.tag_id = ?)")
			args = append(args, p.TagID)
		case core.PredDueOnOrBefore:
			sb.WriteString(" AND due_date <= ?")
			args = append(args, timestamp(p.Time))
		case core.PredDueOnOrAfter:
			sb.WriteString(" AND due_date >= ?")
			args = append(args, timestamp(p.Time))
		case core.PredDueBefore:
			sb.WriteString(" AND due_date < ?")
			args = append(args, timestamp(p.Time))
		case core.PredNoDueDate:
			sb.WriteString(" AND due_date IS NULL")
		default:
			return nil, fmt.Errorf("list tasks: unknown predicate kind %d", p.Kind)
		}
	}

	sb.WriteString(orderBy(tq.Sort))

	switch {
	case tq.Limit > 0:
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, tq.Limit, tq.Offset)
	case tq.Offset > 0 && db.driver == DriverSQLite:
		// sqlite has no OFFSET without LIMIT
		sb.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, tq.Offset)
	case tq.Offset > 0:
		sb.WriteString(" OFFSET ?")
		args = append(args, tq.Offset)
	}

	out := []core.Task{}
	if err := db.conn.SelectContext(ctx, &out, db.conn.Rebind(sb.String()), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	ptrs := make([]*core.Task, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := db.loadTags(ctx, db.conn, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

// orderBy renders the sort with NULLs last in both directions and the id
// as the final ascending tie-break.
func orderBy(s core.Sort) string {
	col, ok := sortColumns[s.Key]
	if !ok {
		col = sortColumns[core.SortByPosition]
	}

	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}

	if col.expr == "id" {
		return " ORDER BY id " + dir
	}
	if col.nullable {
		return fmt.Sprintf(" ORDER BY (%[1]s IS NULL) ASC, %[1]s %[2]s, id ASC", col.expr, dir)
	}
	return fmt.Sprintf(" ORDER BY %s %s, id ASC", col.expr, dir)
}

// UpdateTask saves every scalar field of t and refreshes updated_at.
// When tagIDs is non-nil the task's associations are replaced by it.
func (db *DB) UpdateTask(ctx context.Context, t core.Task, tagIDs *[]int64) (core.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.ID <= 0 || t.Title == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	q := db.conn.Rebind(`
		UPDATE tasks
		SET title = ?,
		    description = ?,
		    completed = ?,
		    priority = ?,
		    due_date = ?,
		    position = ?,
		    updated_at = ?
		WHERE id = ?;
	`)

	var out core.Task
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			t.Title, t.Description, t.Completed, t.Priority, timestampPtr(t.DueDate), t.Position, db.stamp(), t.ID)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return sql.ErrNoRows
		}
		if tagIDs != nil {
			if err := db.replaceTaskTags(ctx, tx, t.ID, *tagIDs); err != nil {
				return err
			}
		}
		out, err = db.getTask(ctx, tx, t.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		if isForeignKeyViolation(err) {
			return core.Task{}, core.ErrTagNotFound
		}
		if isCheckViolation(err) {
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		return core.Task{}, fmt.Errorf("update task: %w", err)
	}
	return out, nil
}

func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	var aff int64
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM task_tags WHERE task_id = ?`), id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
		if err != nil {
			return err
		}
		aff, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if aff == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

// UpdatePositions runs the whole batch in one transaction; ids without a
// row simply update nothing.
func (db *DB) UpdatePositions(ctx context.Context, updates []core.PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	now := db.stamp()
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, tx.Rebind(`UPDATE tasks SET position = ?, updated_at = ? WHERE id = ?`))
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, u := range updates {
			if _, err := stmt.ExecContext(ctx, u.Position, now, u.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update positions: %w", err)
	}
	return nil
}

func (db *DB) replaceTaskTags(ctx context.Context, tx *sqlx.Tx, taskID int64, tagIDs []int64) error {
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM task_tags WHERE task_id = ?`), taskID); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`INSERT INTO task_tags(task_id, tag_id) VALUES (?, ?)`))
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	seen := make(map[int64]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, dup := seen[tagID]; dup {
			continue
		}
		seen[tagID] = struct{}{}
		if _, err := stmt.ExecContext(ctx, taskID, tagID); err != nil {
			return err
		}
	}
	return nil
}

type taskTag struct {
	TaskID int64 `db:"task_id"`
	core.Tag
}

// loadTags fills Tags on every task with a single query. Tasks without
// tags get an empty, non-nil slice.
func (db *DB) loadTags(ctx context.Context, q sqlx.QueryerContext, tasks []*core.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(tasks))
	byID := make(map[int64]*core.Task, len(tasks))
	for _, t := range tasks {
		t.Tags = []core.Tag{}
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	query, args, err := sqlx.In(`
		SELECT tt.task_id, g.id, g.name, g.color, g.user_id, g.created_at
		FROM task_tags tt
		JOIN tags g ON g.id = tt.tag_id
		WHERE tt.task_id IN (?)
		ORDER BY g.id ASC;
	`, ids)
	if err != nil {
		return fmt.Errorf("load task tags: %w", err)
	}

	var rows []taskTag
	if err := sqlx.SelectContext(ctx, q, &rows, db.conn.Rebind(query), args...); err != nil {
		return fmt.Errorf("load task tags: %w", err)
	}

	for _, r := range rows {
		if t, ok := byID[r.TaskID]; ok {
			t.Tags = append(t.Tags, r.Tag)
		}
	}
	return nil
}
