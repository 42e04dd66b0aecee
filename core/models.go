package core

import "time"

const DefaultTagColor = "#6b7280"

type Task struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	Completed   bool       `db:"completed" json:"completed"`
	Priority    *int       `db:"priority" json:"priority"`
	DueDate     *time.Time `db:"due_date" json:"due_date"`
	Position    float64    `db:"position" json:"position"`
	OwnerID     *int64     `db:"user_id" json:"user_id"` // Nil - публичная задача
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	Tags        []Tag      `db:"-" json:"tags"`
}

type Tag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	OwnerID   *int64    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// TaskInput holds the fields accepted on task creation.
type TaskInput struct {
	Title       string
	Description *string
	Priority    *int
	DueDate     *time.Time
	TagIDs      []int64
}

// TaskPatch is a partial update. Pointer fields are either omitted or set;
// Nullable fields can additionally be cleared with an explicit null.
type TaskPatch struct {
	Title       *string
	Description Nullable[string]
	Completed   *bool
	Priority    Nullable[int]
	DueDate     Nullable[time.Time]
	Position    *float64
	TagIDs      *[]int64
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && !p.Description.Present && p.Completed == nil &&
		!p.Priority.Present && !p.DueDate.Present && p.Position == nil && p.TagIDs == nil
}

type PositionUpdate struct {
	ID       int64   `json:"id"`
	Position float64 `json:"position"`
}
