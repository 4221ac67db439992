package tasks

import "errors"

var (
	ErrInvalidLevel      = errors.New("mood or energy level out of range")
	ErrNotFound          = errors.New("task not found")
	ErrInvalidTransition = errors.New("task is no longer pending")
	ErrLimitExceeded     = errors.New("daily new task limit reached")
	ErrNoTemplates       = errors.New("no task templates available")
)
