// Package extr extracts archive files using the trusted archiver and
// decompression programs installed on the host.
//
// The filename extension of an archive is used to look up an Adapter, the
// adapter lists the programs capable of extracting the format in order of
// preference. The first program that is found on the search path and lives
// in a trusted system directory is used, the [trust] package explains which
// directories are trusted. The program is then run under a
// [process.Supervisor] that relays its terminal output and forwards the
// keyboard input, so the prompts of the program can be answered.
//
// The package never decompresses anything itself, the formats known to the
// [adapter] package include 7-Zip, ARC, ARJ, Microsoft Cabinet, Debian and RPM
// packages, ISO images, LHA, RAR, TAR, ZIP and the single stream compressors
// such as bzip2, gzip, lzip, xz and Zstandard.
//
//	func main() {
//	    d := extr.New(extr.NewRegistry(adapter.All()...))
//	    if err := d.Extract("archive.tar.gz", "out", false); err != nil {
//	        fmt.Fprintf(os.Stderr, "error: %v\n", err)
//	    }
//	}
package extr

import (
	"github.com/Defacto2/extr/process"
)

// Adapter describes an archive format and the programs that can extract it.
// An Adapter is a stateless value that is shared by every extraction.
type Adapter interface {
	// Extensions returns the extension keys of the format, such as "zip" or "tar.gz".
	Extensions() []string
	// Binaries returns the program names able to extract the format, in the order of preference.
	Binaries() []string
	// BuildCommand returns the invocation of the named binary that extracts the file
	// into the output directory. The binary is an absolute path to one of the Binaries.
	BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error)
}
