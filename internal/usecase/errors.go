package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrMaintenance           = errors.New("service under maintenance")
)

// Rule violations. Each one is reported with its own reason by the HTTP layer.
var (
	ErrInvalidSquad      = errors.New("invalid squad")
	ErrInvalidStat       = errors.New("invalid stat")
	ErrInvalidTransition = errors.New("invalid transition")
)
