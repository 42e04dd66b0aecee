package core

import "context"

type Pinger interface {
	Ping(ctx context.Context) error
}

// DB is the store the service works against. Implementations return
// ErrTaskNotFound / ErrTagNotFound for missing rows and never apply
// ownership rules themselves; scoping is passed in explicitly.
type DB interface {
	Pinger

	// tasks
	CreateTask(ctx context.Context, t Task, tagIDs []int64) (Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	ListTasks(ctx context.Context, q TaskQuery) ([]Task, error)
	UpdateTask(ctx context.Context, t Task, tagIDs *[]int64) (Task, error)
	DeleteTask(ctx context.Context, id int64) error
	// UpdatePositions applies every update in a single transaction. Ids
	// that no longer exist are skipped.
	UpdatePositions(ctx context.Context, updates []PositionUpdate) error

	// tags
	CreateTag(ctx context.Context, t Tag) (Tag, error)
	GetTag(ctx context.Context, id int64) (Tag, error)
	GetTags(ctx context.Context, ids []int64) ([]Tag, error)
	ListTags(ctx context.Context, s Scope) ([]Tag, error)
	DeleteTag(ctx context.Context, id int64) error
}

// Users is the account store behind the auth shell.
type Users interface {
	CreateUser(ctx context.Context, email, passwordHash string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
}
