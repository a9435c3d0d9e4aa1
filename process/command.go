package process

import (
	"path/filepath"
	"strings"
)

// Command is a fully formed invocation of an external program.
// It is built by an adapter and consumed once by a Supervisor.
type Command struct {
	Path   string   // Path is the absolute path of the program to run.
	Args   []string // Args are the program arguments, not including the program name.
	Dir    string   // Dir is the working directory of the program, an empty value inherits the caller's.
	Output string   // Output is a file to receive the program stdout in place of the terminal.
	Stage  string   // Stage is a source file that must be copied into Dir before the program runs.
}

// Name returns the base name of the program.
func (c Command) Name() string {
	return filepath.Base(c.Path)
}

// String returns the command line as it would be typed in a terminal.
func (c Command) String() string {
	s := append([]string{c.Path}, c.Args...)
	return strings.Join(s, " ")
}
