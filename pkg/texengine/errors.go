package texengine

import (
	"errors"
	"fmt"
)

// ErrEngineNotFound matches every *EngineNotFoundError via errors.Is.
var ErrEngineNotFound = errors.New("texengine: engine not found")

// EngineNotFoundError reports an engine missing from the search path and
// from every candidate directory.
type EngineNotFoundError struct {
	Engine   Engine
	GOOS     string
	Searched []string
}

func (e *EngineNotFoundError) Error() string {
	return fmt.Sprintf("texengine: %s not found on PATH or in %d known install locations: %s",
		e.Engine, len(e.Searched), InstallHint(e.Engine, e.GOOS))
}

// Is reports whether target is ErrEngineNotFound.
func (e *EngineNotFoundError) Is(target error) bool {
	return target == ErrEngineNotFound
}

// PathUpdateError is returned when the engine was found but PATH could not
// be extended with its directory.
type PathUpdateError struct {
	Dir string
	Err error
}

func (e *PathUpdateError) Error() string {
	return fmt.Sprintf("texengine: add %s to PATH: %v", e.Dir, e.Err)
}

func (e *PathUpdateError) Unwrap() error { return e.Err }
