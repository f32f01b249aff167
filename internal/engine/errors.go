package engine

import (
	"errors"
	"fmt"

	"github.com/san-kum/linesaver/internal/display"
)

var (
	// ErrNotRunning is returned by Tick while the effect is idle.
	ErrNotRunning = errors.New("engine: effect is not running")

	// ErrInvalidConfig wraps a rejected configuration.
	ErrInvalidConfig = errors.New("engine: invalid configuration")
)

// ActivationError reports a surface that refused the effect's video mode.
// The engine stays idle and holds no frame state when this is returned.
type ActivationError struct {
	Mode display.Mode
	Err  error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("engine: activate %s: %v", e.Mode, e.Err)
}

func (e *ActivationError) Unwrap() error {
	return e.Err
}
