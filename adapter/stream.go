package adapter

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// Stream is a single file compression format, such as gzip or xz.
//
// The decompressed stream is written to the standard output and redirected
// into a file of the output directory, named after the archive without its
// extension. The archive itself is never modified or removed.
type Stream struct {
	format   string   // format is the name used in error messages.
	exts     []string // exts are the extensions of the format.
	tools    []string // tools are the programs in the order of preference.
	decoders []string // decoders are the tools that decompress without the -d flag.
}

var (
	// Gzip is the GNU Zip format by Jean-loup Gailly and Mark Adler.
	Gzip = Stream{
		format:   "gzip",
		exts:     []string{"gz"},
		tools:    []string{command.Gzip, command.Gunzip},
		decoders: []string{command.Gunzip},
	}
	// Bzip2 is the bzip2 format by Julian Seward.
	Bzip2 = Stream{
		format:   "bzip2",
		exts:     []string{"bz2"},
		tools:    []string{command.Bzip2, command.Bunzip2},
		decoders: []string{command.Bunzip2},
	}
	// Xz is the xz format of the XZ Utils.
	Xz = Stream{
		format:   "xz",
		exts:     []string{"xz"},
		tools:    []string{command.Xz, command.Unxz},
		decoders: []string{command.Unxz},
	}
	// Lzip is the lzip format by Antonio Diaz Diaz.
	Lzip = Stream{
		format:   "lzip",
		exts:     []string{"lz"},
		tools:    []string{command.Lzip, command.Lunzip},
		decoders: []string{command.Lunzip},
	}
	// Lzma is the legacy lzma format of the LZMA Utils.
	Lzma = Stream{
		format:   "lzma",
		exts:     []string{"lzma"},
		tools:    []string{command.Lzma, command.Unlzma},
		decoders: []string{command.Unlzma},
	}
	// Zstd is the Zstandard format by Meta.
	Zstd = Stream{
		format:   "zstd",
		exts:     []string{"zst"},
		tools:    []string{command.Zstd, command.Unzstd},
		decoders: []string{command.Unzstd},
	}
	// Compress is the .Z format of the Unix compress program.
	Compress = Stream{
		format:   "compress",
		exts:     []string{"Z"},
		tools:    []string{command.Uncompress},
		decoders: []string{command.Uncompress},
	}
	// Lzop is the lzop format by Markus Oberhumer.
	Lzop = Stream{
		format: "lzop",
		exts:   []string{"lzo"},
		tools:  []string{command.Lzop},
	}
)

func (s Stream) Extensions() []string {
	return slices.Clone(s.exts)
}

func (s Stream) Binaries() []string {
	return slices.Clone(s.tools)
}

func (s Stream) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	prog := name(binary)
	if !slices.Contains(s.tools, prog) {
		return process.Command{}, unsupported(s.format, binary)
	}
	const (
		decompress = "-d" // -d decompress
		stdout     = "-c" // -c write to the standard output and keep the source file
		verb       = "-v" // -v verbose
	)
	args := []string{}
	if !slices.Contains(s.decoders, prog) {
		args = append(args, decompress)
	}
	args = append(args, stdout)
	if verbose {
		args = append(args, verb)
	}
	args = append(args, file)
	return process.Command{
		Path:   binary,
		Args:   args,
		Output: filepath.Join(outputDir, Stem(file)),
	}, nil
}

// Stem returns the name of the decompressed file, the base name of the archive
// without its extension. A name that would be empty or the same as the archive
// is given the ".out" extension.
func Stem(file string) string {
	const out = ".out"
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == base {
		return base + out
	}
	return stem
}
