package adapter

import (
	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// ISO is the ISO 9660 optical disc image.
type ISO struct{}

func (ISO) Extensions() []string {
	return []string{"iso"}
}

func (ISO) Binaries() []string {
	return []string{command.Zip7, command.BSDTar}
}

func (ISO) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	prog := name(binary)
	switch {
	case isSevenZip(prog):
		return sevenZip(binary, file, outputDir, verbose), nil
	case prog == command.BSDTar:
		return bsdtar(binary, file, outputDir, verbose), nil
	}
	return process.Command{}, unsupported("iso", binary)
}

// SFX is a self-extracting Windows or DOS executable archive.
// The programs find the archive that is appended to the executable.
type SFX struct{}

func (SFX) Extensions() []string {
	return []string{"exe"}
}

func (SFX) Binaries() []string {
	return []string{command.Zip7, command.Unar}
}

func (SFX) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	prog := name(binary)
	switch {
	case isSevenZip(prog):
		return sevenZip(binary, file, outputDir, verbose), nil
	case prog == command.Unar:
		return unar(binary, file, outputDir, verbose), nil
	}
	return process.Command{}, unsupported("sfx", binary)
}
