package process

import (
	"errors"
	"fmt"
)

var (
	ErrSpawn     = errors.New("could not start the program")
	ErrExecution = errors.New("program exited with a failure")
	ErrNoPath    = errors.New("command program path is empty")
)

// ExitError is returned when a program ran but did not exit successfully.
// It keeps the raw exit status so the caller can report it.
type ExitError struct {
	Path   string // Path of the program.
	Code   int    // Code is the exit code, or -1 when the program was terminated by a signal.
	Status string // Status is the operating system description, such as "exit status 2" or "signal: killed".
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s, %s: %s", ErrExecution, e.Status, e.Path)
}

// Is implements error matching, so that errors.Is(err, ErrExecution) is true.
func (e *ExitError) Is(target error) bool {
	return target == ErrExecution
}
