package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNilQueryInput    = errors.New("query options is nil")
	ErrTooManyProcesses = errors.New("workload exceeds the process limit")
	ErrTokenDisabled    = errors.New("token authentication is disabled")
	ErrInvalidToken     = errors.New("invalid token")
	ErrNoPolicy         = errors.New("no policy requested")
)
