package adapter

import (
	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// Cab is the Microsoft Cabinet archive.
type Cab struct{}

func (Cab) Extensions() []string {
	return []string{"cab"}
}

func (Cab) Binaries() []string {
	return []string{command.CabExtract, command.Zip7}
}

func (Cab) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	prog := name(binary)
	switch {
	case prog == command.CabExtract:
		const (
			directory = "-d" // -d extract into the directory
			quiet     = "-q" // -q only print errors and warnings
		)
		args := []string{directory, outputDir, file}
		if !verbose {
			args = append(args, quiet)
		}
		return process.Command{Path: binary, Args: args}, nil
	case isSevenZip(prog):
		return sevenZip(binary, file, outputDir, verbose), nil
	}
	return process.Command{}, unsupported("cab", binary)
}
