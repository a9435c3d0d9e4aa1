package adapter

import (
	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// Deb is the Debian software package.
// The members of the package are extracted, not the installed file tree,
// except when using dpkg.
type Deb struct{}

func (Deb) Extensions() []string {
	return []string{"deb"}
}

func (Deb) Binaries() []string {
	return []string{command.BSDTar, command.Ar, command.Dpkg}
}

func (Deb) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	switch name(binary) {
	case command.BSDTar:
		return bsdtar(binary, file, outputDir, verbose), nil
	case command.Ar:
		// the --output option requires GNU binutils 2.34 or newer
		const (
			extract = "x"        // x extract the members
			output  = "--output" // --output directory of the extracted members
			verb    = "v"        // v verbose, as a modifier of the x operation
		)
		op := extract
		if verbose {
			op += verb
		}
		return process.Command{Path: binary, Args: []string{op, file, output, outputDir}}, nil
	case command.Dpkg:
		const extract = "-x" // -x extract the files of the package
		return process.Command{Path: binary, Args: []string{extract, file, outputDir}}, nil
	}
	return process.Command{}, unsupported("deb", binary)
}

// RPM is the Red Hat software package.
//
// The rpm2cpio program is not offered, as it requires a shell pipeline into cpio.
type RPM struct{}

func (RPM) Extensions() []string {
	return []string{"rpm"}
}

func (RPM) Binaries() []string {
	return []string{command.BSDTar, command.Zip7}
}

func (RPM) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	prog := name(binary)
	switch {
	case prog == command.BSDTar:
		return bsdtar(binary, file, outputDir, verbose), nil
	case isSevenZip(prog):
		return sevenZip(binary, file, outputDir, verbose), nil
	}
	return process.Command{}, unsupported("rpm", binary)
}
