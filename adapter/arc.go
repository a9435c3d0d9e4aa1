package adapter

import (
	"path/filepath"

	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// Arc is the ARC format once credited to System Enhancement Associates,
// but now using the [arc program] by Howard Chu.
//
// The DOS era arc program cannot extract to a target directory. To work
// around this, the command asks for the archive to be copied into the output
// directory, which is used as the working directory. The copy is removed
// once the program exits.
//
// [arc program]: https://github.com/hyc/arc
type Arc struct{}

func (Arc) Extensions() []string {
	return []string{"arc"}
}

func (Arc) Binaries() []string {
	return []string{command.Arc}
}

func (Arc) BuildCommand(binary, file, outputDir string, _ bool) (process.Command, error) {
	if name(binary) != command.Arc {
		return process.Command{}, unsupported("arc", binary)
	}
	const extract = "x" // x extract files from the archive
	return process.Command{
		Path:  binary,
		Args:  []string{extract, filepath.Base(file)},
		Dir:   outputDir,
		Stage: file,
	}, nil
}
