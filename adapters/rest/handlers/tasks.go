package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/parniiyan/To-do-list/adapters/rest"
	"github.com/parniiyan/To-do-list/core"
	"github.com/parniiyan/To-do-list/pkg/res"
)

// accepted in due_before / due_after; zone-less values are taken as UTC
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", s)
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func validPriority(p *int) bool {
	return p == nil || (*p >= core.MinPriority && *p <= core.MaxPriority)
}

// parseTaskFilter reads the filter parameters. Malformed values are
// rejected; an unrecognized status is passed through and ignored by the core.
func parseTaskFilter(q url.Values) (core.TaskFilter, error) {
	var f core.TaskFilter

	f.Status = strings.TrimSpace(q.Get("status"))

	if v := q.Get("priority"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !validPriority(&n) {
			return f, errors.New("invalid priority")
		}
		f.Priority = &n
	}

	if v := q.Get("tag_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, errors.New("invalid tag_id")
		}
		f.TagID = &id
	}

	if v := q.Get("due_before"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return f, errors.New("invalid due_before")
		}
		f.DueBefore = &t
	}

	if v := q.Get("due_after"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return f, errors.New("invalid due_after")
		}
		f.DueAfter = &t
	}

	if v := q.Get("overdue"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("invalid overdue")
		}
		f.Overdue = b
	}

	if v := q.Get("no_due_date"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("invalid no_due_date")
		}
		f.NoDueDate = b
	}

	return f, nil
}

func parsePage(q url.Values) (core.Page, error) {
	var p core.Page
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, errors.New("invalid limit")
		}
		p.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, errors.New("invalid offset")
		}
		p.Offset = n
	}
	return p, nil
}

func NewListTasksHandler(_ *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		f, err := parseTaskFilter(q)
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		page, err := parsePage(q)
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		order := core.ResolveSort(q.Get("sort_by"), q.Get("sort_order"))

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListTasks(ctx, core.IdentityFrom(ctx), f, order, page)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, map[string]any{"tasks": items}, http.StatusOK)
	}
}

func NewCreateTaskHandler(_ *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(in.Title) == "" {
			res.Error(w, "title is required", http.StatusBadRequest)
			return
		}
		if !validPriority(in.Priority) {
			res.Error(w, "invalid priority", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.CreateTask(ctx, core.IdentityFrom(ctx), core.TaskInput{
			Title:       in.Title,
			Description: in.Description,
			Priority:    in.Priority,
			DueDate:     in.DueDate,
			TagIDs:      in.TagIDs,
		})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusCreated)
	}
}

func NewGetTaskHandler(_ *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.GetTask(ctx, core.IdentityFrom(ctx), id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewPatchTaskHandler(_ *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.PatchTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p := in.Patch()
		if p.IsEmpty() {
			res.Error(w, "no fields to update", http.StatusBadRequest)
			return
		}
		if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
			res.Error(w, "title must not be empty", http.StatusBadRequest)
			return
		}
		if !validPriority(p.Priority.Ptr()) {
			res.Error(w, "invalid priority", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.UpdateTask(ctx, core.IdentityFrom(ctx), id, p)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewToggleTaskHandler(_ *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.ToggleTask(ctx, core.IdentityFrom(ctx), id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewDeleteTaskHandler(_ *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTask(ctx, core.IdentityFrom(ctx), id); err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.NoContent(w)
	}
}

// NewReorderTasksHandler always answers 204 unless the store fails; pairs
// the caller may not touch are skipped by the service.
func NewReorderTasksHandler(log *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.ReorderIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.ReorderTasks(ctx, core.IdentityFrom(ctx), in.Tasks); err != nil {
			log.Error("reorder failed", "items", len(in.Tasks), "error", err)
			rest.WriteErr(w, err)
			return
		}
		res.NoContent(w)
	}
}
