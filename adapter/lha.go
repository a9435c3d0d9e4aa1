package adapter

import (
	"fmt"

	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// Lha is the LHA and LZH format credited to Haruyasu Yoshizaki (Yoshi).
//
// On Linux either the jlha-utils or [lhasa] packages work.
//
// [lhasa]: https://fragglet.github.io/lhasa/
type Lha struct{}

func (Lha) Extensions() []string {
	return []string{"lzh", "lha"}
}

func (Lha) Binaries() []string {
	return []string{command.Lha, command.Lhasa, command.Unar, command.Zip7}
}

func (Lha) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	prog := name(binary)
	switch {
	case prog == command.Lha, prog == command.Lhasa:
		// example command: lha -xfw=destdir/ archive
		const (
			extract   = "x"  // extract with the archived directories
			overwrite = "f"  // force overwrite of existing files, do not prompt
			quiet     = "q1" // hide the progress indicator
			verb      = "v"  // verbose messages
		)
		opts := extract + overwrite
		if verbose {
			opts += verb
		} else {
			opts += quiet
		}
		param := fmt.Sprintf("-%sw=%s", opts, outputDir)
		return process.Command{Path: binary, Args: []string{param, file}}, nil
	case prog == command.Unar:
		return unar(binary, file, outputDir, verbose), nil
	case isSevenZip(prog):
		return sevenZip(binary, file, outputDir, verbose), nil
	}
	return process.Command{}, unsupported("lha", binary)
}
