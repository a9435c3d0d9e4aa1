package adapter

import (
	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// Zip is the ZIP archive by Phil Katz, including the Java jar and war packages.
//
// Some filenames set by MS-DOS are not valid on modern systems as they use
// codepoints that are not valid in Unicode, unzip is the most forgiving program.
type Zip struct{}

func (Zip) Extensions() []string {
	return []string{"zip", "jar", "war"}
}

func (Zip) Binaries() []string {
	return zipTools(goos)
}

func zipTools(goos string) []string {
	return prefer(goos, command.Unzip, command.Zip7, command.BSDTar, command.Jar)
}

func (Zip) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	prog := name(binary)
	switch {
	case prog == command.Unar:
		return unar(binary, file, outputDir, verbose), nil
	case prog == command.Unzip:
		// unzip [-options] file[.zip] [-d exdir]
		const (
			quiet     = "-q" // quiet
			targetDir = "-d" // target directory to extract files to
		)
		args := []string{}
		if !verbose {
			args = append(args, quiet)
		}
		args = append(args, file, targetDir, outputDir)
		return process.Command{Path: binary, Args: args}, nil
	case isSevenZip(prog):
		return sevenZip(binary, file, outputDir, verbose), nil
	case prog == command.BSDTar:
		return bsdtar(binary, file, outputDir, verbose), nil
	case prog == command.Jar:
		// jar has no target directory option and extracts into the working directory
		const (
			extract        = "xf"  // x extract, f archive file
			extractVerbose = "xvf" // v verbose output
		)
		op := extract
		if verbose {
			op = extractVerbose
		}
		return process.Command{Path: binary, Args: []string{op, file}, Dir: outputDir}, nil
	}
	return process.Command{}, unsupported("zip", binary)
}
