package service

import (
	"errors"
	"net/http"
)

// Registry operations report outcomes as a status+message pair instead of
// raising to the caller; the presentation layer translates these straight
// into flash messages or HTTP statuses.
type Result struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}

func (r Result) OK() bool {
	return r.Status == http.StatusOK
}

// Failure taxonomy. Persistence failures not otherwise classified are
// downgraded to ErrStore at the registry boundary.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrConflict           = errors.New("user already exists in the system")
	ErrNotFound           = errors.New("not found")
	ErrStore              = errors.New("internal server error")
)

func ok(msg string) Result {
	return Result{Status: http.StatusOK, Msg: msg}
}

func fail(err error) Result {
	switch {
	case errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrConflict):
		return Result{Status: http.StatusBadRequest, Msg: err.Error()}
	case errors.Is(err, ErrNotFound):
		return Result{Status: http.StatusNotFound, Msg: err.Error()}
	default:
		return Result{Status: http.StatusInternalServerError, Msg: ErrStore.Error()}
	}
}

func notFound(msg string) Result {
	return Result{Status: http.StatusNotFound, Msg: msg}
}
