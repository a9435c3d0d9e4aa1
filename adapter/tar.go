package adapter

import (
	"strings"

	"github.com/Defacto2/extr"
	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// Tar is the Tape ARchive by AT&T Bell Labs and its compressed tarballs.
//
// BSD tar and GNU tar both detect the compression of a tarball when reading it,
// but the compression flag is still given when the extension names it,
// so older versions of GNU tar also work.
type Tar struct{}

func (Tar) Extensions() []string {
	return []string{"tar", "tar.gz", "tgz", "tar.bz2", "tbz2", "tar.xz", "txz", "tar.zst"}
}

func (Tar) Binaries() []string {
	return []string{command.Unar, command.Tar, command.GTar, command.BSDTar}
}

func (Tar) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	switch name(binary) {
	case command.Unar:
		return unar(binary, file, outputDir, verbose), nil
	case command.Tar, command.GTar, command.BSDTar:
		c := bsdtar(binary, file, outputDir, verbose)
		if flag := compression(file); flag != "" {
			c.Args = append(c.Args, flag)
		}
		return c, nil
	}
	return process.Command{}, unsupported("tar", binary)
}

// compression returns the tar flag of the compression named by the file extension.
func compression(file string) string {
	const (
		gzip  = "-z"     // -z filter the archive through gzip
		bzip2 = "-j"     // -j filter the archive through bzip2
		xz    = "-J"     // -J filter the archive through xz
		zstd  = "--zstd" // --zstd filter the archive through zstd
	)
	key := extr.Key(file)
	switch strings.TrimPrefix(key, "tar.") {
	case "gz", "tgz":
		return gzip
	case "bz2", "tbz2":
		return bzip2
	case "xz", "txz":
		return xz
	case "zst":
		return zstd
	}
	return ""
}
