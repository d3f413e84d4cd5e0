package service

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned when a key is not in the registry.
var ErrUnknownStrategy = errors.New("strategy not found")

// ErrNotReady is returned when the service has no registry loaded.
var ErrNotReady = errors.New("service not ready")

// UnknownStrategyError names the key that was asked for.
type UnknownStrategyError struct {
	Key string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownStrategy, e.Key)
}

// Is lets errors.Is match ErrUnknownStrategy.
func (e *UnknownStrategyError) Is(target error) bool {
	return target == ErrUnknownStrategy
}
