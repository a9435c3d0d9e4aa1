package adapter

import (
	"os"
	"strings"

	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// Rar is the Roshal ARchive by Alexander Roshal.
//
// Use the freeware [unrar] by RARLAB, not the common unrar-free
// which is feature incomplete and fails on many archives.
//
// [unrar]: https://www.rarlab.com/rar_add.htm
type Rar struct{}

func (Rar) Extensions() []string {
	return []string{"rar"}
}

func (Rar) Binaries() []string {
	return rarTools(goos)
}

func rarTools(goos string) []string {
	if goos == darwin {
		return []string{command.Unar, command.Unrar}
	}
	return []string{command.Unrar, command.Zip7}
}

func (Rar) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	prog := name(binary)
	switch {
	case prog == command.Unar:
		return unar(binary, file, outputDir, verbose), nil
	case prog == command.Unrar:
		const (
			eXtract    = "x"    // x extract files with full path
			yes        = "-y"   // -y assume yes to all queries
			noComments = "-c-"  // -c- do not display comments
			quiet      = "-idq" // -idq disable messages, except for errors
		)
		args := []string{eXtract, yes, noComments}
		if !verbose {
			args = append(args, quiet)
		}
		// unrar requires the destination to end with a path separator
		dst := outputDir
		if !strings.HasSuffix(dst, string(os.PathSeparator)) {
			dst += string(os.PathSeparator)
		}
		args = append(args, file, dst)
		return process.Command{Path: binary, Args: args}, nil
	case isSevenZip(prog):
		return sevenZip(binary, file, outputDir, verbose), nil
	}
	return process.Command{}, unsupported("rar", binary)
}
