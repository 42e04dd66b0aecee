package core

import "errors"

// Tasks errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskInvalidArgs = errors.New("task invalid args")
)

// Tags errors
var (
	ErrTagNotFound    = errors.New("tag not found")
	ErrTagInvalidArgs = errors.New("tag invalid args")
)

// Auth errors
var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInvalidArgs    = errors.New("user invalid args")
)
