package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/parniiyan/To-do-list/adapters/auth"
	"github.com/parniiyan/To-do-list/adapters/rest"
	"github.com/parniiyan/To-do-list/core"
	"github.com/parniiyan/To-do-list/pkg/res"
)

func NewRegisterHandler(log *slog.Logger, svc Accounts, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.RegisterIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if in.Email == "" || in.Password == "" {
			res.Error(w, "email and password are required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, err := svc.Register(ctx, in.Email, in.Password)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		log.Info("user registered", "user_id", u.ID)
		res.Json(w, u, http.StatusCreated)
	}
}

// NewLoginHandler follows the OAuth2 password flow: form fields username
// (the email) and password.
func NewLoginHandler(_ *slog.Logger, svc Accounts, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			res.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		email, password := r.PostForm.Get("username"), r.PostForm.Get("password")
		if email == "" || password == "" {
			res.Error(w, "username and password are required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		token, err := svc.Login(ctx, email, password)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, rest.TokenOut{AccessToken: token, TokenType: auth.TokenType}, http.StatusOK)
	}
}

func NewMeHandler(_ *slog.Logger, svc Accounts, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, err := svc.Me(ctx, core.IdentityFrom(ctx))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, u, http.StatusOK)
	}
}
