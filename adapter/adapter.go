// Package adapter describes the archive formats and the command line of every
// program able to extract them.
//
// The adapters only build commands, they never run a program nor touch the
// file system. The extr.Dispatcher picks the program and runs the command.
//
// On macOS [The Unarchiver] is the first choice for most formats,
// as it is self-contained and handles many legacy archives.
//
// [The Unarchiver]: https://theunarchiver.com/command-line
package adapter

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/Defacto2/extr"
	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// ErrUnsupportedTool is returned when an adapter is asked to build a command
// for a program it does not know.
var ErrUnsupportedTool = errors.New("program is not supported by the adapter")

const darwin = "darwin"

// All returns every adapter known to the package.
// When two adapters declare the same extension, the later one in the list owns it.
func All() []extr.Adapter {
	return []extr.Adapter{
		Zip{},
		Tar{},
		SevenZip{},
		Rar{},
		Arj{},
		Lha{},
		Cab{},
		ISO{},
		SFX{},
		Deb{},
		RPM{},
		Arc{},
		Gzip,
		Bzip2,
		Xz,
		Lzip,
		Lzma,
		Zstd,
		Compress,
		Lzop,
	}
}

// Registry returns a registry of every adapter known to the package.
func Registry() *extr.Registry {
	return extr.NewRegistry(All()...)
}

// name returns the program name of the binary path.
func name(binary string) string {
	return filepath.Base(binary)
}

func unsupported(format, binary string) error {
	return fmt.Errorf("%s %w: %s", format, ErrUnsupportedTool, name(binary))
}

// prefer returns the names with The Unarchiver moved or added to the front on macOS.
func prefer(goos string, names ...string) []string {
	if goos != darwin {
		return names
	}
	names = slices.DeleteFunc(slices.Clone(names), func(s string) bool {
		return s == command.Unar
	})
	return append([]string{command.Unar}, names...)
}

// goos is the operating system used to order the programs.
var goos = runtime.GOOS

// isSevenZip returns true for any of the 7-Zip program names.
func isSevenZip(prog string) bool {
	switch prog {
	case command.Zip7, command.Zip7a, command.Zip7r, command.Zip7z:
		return true
	}
	return false
}

// unar returns The Unarchiver command to extract the file into the output directory.
func unar(binary, file, outputDir string, verbose bool) process.Command {
	const (
		output = "-o" // -o output directory
		quiet  = "-q" // -q run in quiet mode
	)
	args := []string{output, outputDir, file}
	if !verbose {
		args = append(args, quiet)
	}
	return process.Command{Path: binary, Args: args}
}

// sevenZip returns the 7-Zip command to extract the file into the output directory.
func sevenZip(binary, file, outputDir string, verbose bool) process.Command {
	const (
		extract   = "x"     // x extract with full paths
		yes       = "-y"    // -y assume yes on all queries
		output    = "-o"    // -o output directory, with no space before the path
		noStdout  = "-bso0" // -bso0 disable the standard output messages
		noPercent = "-bd"   // -bd disable the progress indicator
	)
	args := []string{extract, yes, output + outputDir, file}
	if !verbose {
		args = append(args, noStdout, noPercent)
	}
	return process.Command{Path: binary, Args: args}
}

// bsdtar returns the libarchive tar command to extract the file into the output directory.
// Besides tarballs, bsdtar reads zip, 7z, iso, cab, rar, deb and rpm files.
func bsdtar(binary, file, outputDir string, verbose bool) process.Command {
	const (
		extract   = "-xf" // -x extract, -f archive file
		targetDir = "-C"  // -C change to the directory before extracting
		verb      = "-v"  // -v list the extracted files
	)
	args := []string{extract, file, targetDir, outputDir}
	if verbose {
		args = append(args, verb)
	}
	return process.Command{Path: binary, Args: args}
}
