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

const userColumns = `id, email, password, created_at`

func (db *DB) CreateUser(ctx context.Context, email, passwordHash string) (core.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || passwordHash == "" {
		return core.User{}, core.ErrUserInvalidArgs
	}

	q := db.conn.Rebind(`
		INSERT INTO users(email, password, created_at)
		VALUES (?, ?, ?)
		RETURNING id;
	`)

	var u core.User
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		var id int64
		if err := tx.QueryRowxContext(ctx, q, email, passwordHash, db.stamp()).Scan(&id); err != nil {
			return err
		}
		return tx.GetContext(ctx, &u, tx.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return core.User{}, core.ErrUserAlreadyExists
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (db *DB) GetUser(ctx context.Context, id int64) (core.User, error) {
	return db.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	return db.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, strings.TrimSpace(email))
}

func (db *DB) getUser(ctx context.Context, q string, arg any) (core.User, error) {
	var u core.User
	if err := db.conn.GetContext(ctx, &u, db.conn.Rebind(q), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
