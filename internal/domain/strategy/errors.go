package strategy

import "errors"

// Sentinel kinds for strategy errors.
var (
	ErrInvalidSummary = errors.New("invalid strategy summary")
	ErrInvalidKey     = errors.New("invalid strategy key")
	ErrCatalog        = errors.New("strategy catalog")
)
