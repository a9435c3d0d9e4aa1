package adapter

import (
	"github.com/Defacto2/extr/command"
	"github.com/Defacto2/extr/process"
)

// SevenZip is the 7-Zip archive by Igor Pavlov.
//
// The p7zip package offers the 7z, 7za and 7zr programs,
// the official console version of 7-Zip for Linux is named 7zz.
type SevenZip struct{}

func (SevenZip) Extensions() []string {
	return []string{"7z"}
}

func (SevenZip) Binaries() []string {
	return sevenZipTools(goos)
}

func sevenZipTools(goos string) []string {
	return prefer(goos, command.Zip7, command.Zip7z, command.Zip7a, command.Zip7r, command.BSDTar)
}

func (SevenZip) BuildCommand(binary, file, outputDir string, verbose bool) (process.Command, error) {
	prog := name(binary)
	switch {
	case isSevenZip(prog):
		return sevenZip(binary, file, outputDir, verbose), nil
	case prog == command.BSDTar:
		return bsdtar(binary, file, outputDir, verbose), nil
	case prog == command.Unar:
		return unar(binary, file, outputDir, verbose), nil
	}
	return process.Command{}, unsupported("7z", binary)
}
