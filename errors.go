package extr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Defacto2/extr/process"
)

var (
	ErrUnsupportedFormat = errors.New("no adapter for the extension")
	ErrNoTrustedTool     = errors.New("no trusted or installed program for the format")
	ErrAdapterBuild      = errors.New("adapter could not build the command")
	ErrIO                = errors.New("file system error")
	ErrSpawn             = process.ErrSpawn
	ErrExecution         = process.ErrExecution
)

// NoTrustedToolError is returned when none of the programs able to extract
// a format is installed in a trusted location.
// It names every candidate so the operator knows what to install.
type NoTrustedToolError struct {
	Key        string   // Key is the extension key of the format.
	Candidates []string // Candidates are the program names that were searched for.
}

func (e *NoTrustedToolError) Error() string {
	return fmt.Sprintf("%s %s among candidates [%s]",
		ErrNoTrustedTool, e.Key, strings.Join(e.Candidates, ", "))
}

// Is implements error matching, so that errors.Is(err, ErrNoTrustedTool) is true.
func (e *NoTrustedToolError) Is(target error) bool {
	return target == ErrNoTrustedTool
}
