package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound       = errors.New("strategy not found")
	ErrCorruptSummary = errors.New("corrupt summary file")
	ErrDataDir        = errors.New("summary directory unavailable")
	ErrDuplicateKey   = errors.New("duplicate strategy key")
	ErrEmptyRegistry  = errors.New("no strategy summaries found")
)
