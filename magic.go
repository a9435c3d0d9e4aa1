package extr

import (
	"fmt"
	"os"

	"github.com/Defacto2/magicnumber"
)

// Sniff reads the signature of the named file and returns the extension key
// of its archive format. An empty key is returned for unknown formats.
//
// It is used for files that are named without a usable extension,
// such as DOS-era uploads or files saved by a web browser.
func Sniff(name string) (string, error) {
	r, err := os.Open(name)
	if err != nil {
		return "", fmt.Errorf("extr sniff open %w", err)
	}
	defer r.Close()
	sign, err := magicnumber.Archive(r)
	if err != nil {
		return "", fmt.Errorf("extr sniff magic %w", err)
	}
	return signKey(sign), nil
}

// signKey returns the extension key for an archive signature.
func signKey(sign magicnumber.Signature) string {
	switch sign { //nolint:exhaustive
	case magicnumber.GzipCompressArchive:
		return "gz"
	case
		magicnumber.PKWAREZip,
		magicnumber.PKWAREZip64,
		magicnumber.PKWAREZipImplode,
		magicnumber.PKWAREZipReduce,
		magicnumber.PKWAREZipShrink:
		return "zip"
	case magicnumber.Bzip2CompressArchive:
		return "bz2"
	case magicnumber.MicrosoftCABinet:
		return "cab"
	case magicnumber.TapeARchive:
		return tar
	case magicnumber.XZCompressArchive:
		return "xz"
	case magicnumber.ZStandardArchive:
		return "zst"
	case magicnumber.ARChiveSEA:
		return "arc"
	case magicnumber.ArchiveRobertJung:
		return "arj"
	case magicnumber.YoshiLHA:
		return "lha"
	case
		magicnumber.RoshalARchive,
		magicnumber.RoshalARchivev5:
		return "rar"
	case magicnumber.X7zCompressArchive:
		return "7z"
	}
	return ""
}
