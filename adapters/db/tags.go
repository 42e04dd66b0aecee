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

const tagColumns = `id, name, color, user_id, created_at`

func (db *DB) CreateTag(ctx context.Context, t core.Tag) (core.Tag, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return core.Tag{}, core.ErrTagInvalidArgs
	}
	if t.Color == "" {
		t.Color = core.DefaultTagColor
	}

	q := db.conn.Rebind(`
		INSERT INTO tags(name, color, user_id, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id;
	`)

	var out core.Tag
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		var id int64
		if err := tx.QueryRowxContext(ctx, q, t.Name, t.Color, t.OwnerID, db.stamp()).Scan(&id); err != nil {
			return err
		}
		return tx.GetContext(ctx, &out, tx.Rebind(`SELECT `+tagColumns+` FROM tags WHERE id = ?`), id)
	})
	if err != nil {
		if isCheckViolation(err) {
			return core.Tag{}, core.ErrTagInvalidArgs
		}
		return core.Tag{}, fmt.Errorf("insert tag: %w", err)
	}
	return out, nil
}

func (db *DB) GetTag(ctx context.Context, id int64) (core.Tag, error) {
	q := db.conn.Rebind(`SELECT ` + tagColumns + ` FROM tags WHERE id = ?`)

	var t core.Tag
	if err := db.conn.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Tag{}, core.ErrTagNotFound
		}
		return core.Tag{}, fmt.Errorf("get tag: %w", err)
	}
	return t, nil
}

func (db *DB) GetTags(ctx context.Context, ids []int64) ([]core.Tag, error) {
	out := []core.Tag{}
	if len(ids) == 0 {
		return out, nil
	}

	q, args, err := sqlx.In(`SELECT `+tagColumns+` FROM tags WHERE id IN (?) ORDER BY id ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}

	if err := db.conn.SelectContext(ctx, &out, db.conn.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}
	return out, nil
}

func (db *DB) ListTags(ctx context.Context, s core.Scope) ([]core.Tag, error) {
	var (
		q    string
		args []any
	)
	if s.UserID != nil {
		q = `SELECT ` + tagColumns + ` FROM tags WHERE user_id IS NULL OR user_id = ? ORDER BY lower(name) ASC, id ASC`
		args = append(args, *s.UserID)
	} else {
		q = `SELECT ` + tagColumns + ` FROM tags WHERE user_id IS NULL ORDER BY lower(name) ASC, id ASC`
	}

	out := []core.Tag{}
	if err := db.conn.SelectContext(ctx, &out, db.conn.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return out, nil
}

// DeleteTag detaches the tag from every task before removing it; the
// tasks themselves are untouched.
func (db *DB) DeleteTag(ctx context.Context, id int64) error {
	var aff int64
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM task_tags WHERE tag_id = ?`), id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM tags WHERE id = ?`), id)
		if err != nil {
			return err
		}
		aff, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if aff == 0 {
		return core.ErrTagNotFound
	}
	return nil
}
