package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/parniiyan/To-do-list/adapters/rest"
	"github.com/parniiyan/To-do-list/core"
)

type Tasks interface {
	core.Pinger

	ListTasks(ctx context.Context, id core.Identity, f core.TaskFilter, order core.Sort, page core.Page) ([]core.Task, error)
	GetTask(ctx context.Context, id core.Identity, taskID int64) (core.Task, error)
	CreateTask(ctx context.Context, id core.Identity, in core.TaskInput) (core.Task, error)
	UpdateTask(ctx context.Context, id core.Identity, taskID int64, p core.TaskPatch) (core.Task, error)
	ToggleTask(ctx context.Context, id core.Identity, taskID int64) (core.Task, error)
	DeleteTask(ctx context.Context, id core.Identity, taskID int64) error
	ReorderTasks(ctx context.Context, id core.Identity, items []core.PositionUpdate) error

	ListTags(ctx context.Context, id core.Identity) ([]core.Tag, error)
	CreateTag(ctx context.Context, id core.Identity, name, color string) (core.Tag, error)
	DeleteTag(ctx context.Context, id core.Identity, tagID int64) error
}

type Accounts interface {
	rest.IdentityResolver

	Register(ctx context.Context, email, password string) (core.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, id core.Identity) (core.User, error)
}

type Deps struct {
	Tasks    Tasks
	Accounts Accounts
}

type Options struct {
	Timeout        time.Duration
	AllowAnonymous bool
}

// New builds the full HTTP handler: routes plus identity resolution and
// request logging.
func New(log *slog.Logger, deps Deps, opts Options) http.Handler {
	mux := http.NewServeMux()
	Register(mux, log, deps, opts)
	return rest.RequestLogger(log, rest.WithIdentity(log, deps.Accounts, mux))
}

func Register(mux *http.ServeMux, log *slog.Logger, deps Deps, opts Options) {
	timeout := opts.Timeout

	// task and tag routes accept anonymous callers only when configured to
	guard := func(h http.Handler) http.Handler {
		if opts.AllowAnonymous {
			return h
		}
		return rest.RequireIdentity(h)
	}

	// health
	mux.Handle("GET /health", NewPingHandler(log, map[string]core.Pinger{"db": deps.Tasks}, timeout))

	// auth
	mux.Handle("POST /auth/register", NewRegisterHandler(log, deps.Accounts, timeout))
	mux.Handle("POST /auth/login", NewLoginHandler(log, deps.Accounts, timeout))
	mux.Handle("GET /auth/me", rest.RequireIdentity(NewMeHandler(log, deps.Accounts, timeout)))

	// tasks
	mux.Handle("GET /tasks", guard(NewListTasksHandler(log, deps.Tasks, timeout)))
	mux.Handle("POST /tasks", guard(NewCreateTaskHandler(log, deps.Tasks, timeout)))
	mux.Handle("PUT /tasks/reorder", guard(NewReorderTasksHandler(log, deps.Tasks, timeout)))
	mux.Handle("GET /tasks/{id}", guard(NewGetTaskHandler(log, deps.Tasks, timeout)))
	mux.Handle("PATCH /tasks/{id}", guard(NewPatchTaskHandler(log, deps.Tasks, timeout)))
	mux.Handle("PATCH /tasks/{id}/toggle", guard(NewToggleTaskHandler(log, deps.Tasks, timeout)))
	mux.Handle("DELETE /tasks/{id}", guard(NewDeleteTaskHandler(log, deps.Tasks, timeout)))

	// tags
	mux.Handle("GET /tags", guard(NewListTagsHandler(log, deps.Tasks, timeout)))
	mux.Handle("POST /tags", guard(NewCreateTagHandler(log, deps.Tasks, timeout)))
	mux.Handle("DELETE /tags/{id}", guard(NewDeleteTagHandler(log, deps.Tasks, timeout)))
}
