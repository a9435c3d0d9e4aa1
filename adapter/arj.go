package adapter

import (
	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// Arj is the Archived by Robert Jung format, using the open-source [arj] port.
//
// Only use arj, as unarj offers limited functionality.
//
// [arj]: https://arj.sourceforge.net/
type Arj struct{}

func (Arj) Extensions() []string {
	return []string{"arj"}
}

func (Arj) Binaries() []string {
	return arjTools(goos)
}

func arjTools(goos string) []string {
	if goos == darwin {
		return []string{command.Unar, command.Arj}
	}
	return []string{command.Arj, command.Zip7}
}

func (Arj) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	prog := name(binary)
	switch {
	case prog == command.Unar:
		return unar(binary, file, outputDir, verbose), nil
	case prog == command.Arj:
		// note: these flags are for arj32 v3.10
		const (
			extract    = "x"   // x extract files
			yes        = "-y"  // -y assume yes to all queries
			noProgress = "-i"  // -i do not show the progress indicator
			targetDir  = "-ht" // -ht target directory
		)
		args := []string{extract, yes}
		if !verbose {
			args = append(args, noProgress)
		}
		args = append(args, file, targetDir+outputDir)
		return process.Command{Path: binary, Args: args}, nil
	case isSevenZip(prog):
		return sevenZip(binary, file, outputDir, verbose), nil
	}
	return process.Command{}, unsupported("arj", binary)
}
