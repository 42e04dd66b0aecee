package rest

import (
	"errors"
	"net/http"

	"github.com/parniiyan/To-do-list/core"
	"github.com/parniiyan/To-do-list/pkg/res"
)

func WriteErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrTaskInvalidArgs),
		errors.Is(err, core.ErrTagInvalidArgs),
		errors.Is(err, core.ErrUserInvalidArgs):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrTaskNotFound),
		errors.Is(err, core.ErrTagNotFound),
		errors.Is(err, core.ErrUserNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrUnauthenticated),
		errors.Is(err, core.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		res.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, core.ErrUserAlreadyExists):
		res.Error(w, err.Error(), http.StatusConflict)
	default:
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
