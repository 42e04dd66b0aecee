package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/parniiyan/To-do-list/adapters/rest"
	"github.com/parniiyan/To-do-list/core"
	"github.com/parniiyan/To-do-list/pkg/res"
)

func NewListTagsHandler(_ *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListTags(ctx, core.IdentityFrom(ctx))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, map[string]any{"tags": items}, http.StatusOK)
	}
}

func NewCreateTagHandler(_ *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTagIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(in.Name) == "" {
			res.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.CreateTag(ctx, core.IdentityFrom(ctx), in.Name, in.Color)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusCreated)
	}
}

func NewDeleteTagHandler(_ *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTag(ctx, core.IdentityFrom(ctx), id); err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.NoContent(w)
	}
}
