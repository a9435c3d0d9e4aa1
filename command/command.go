// Package command lists the known archiving and decompression application names.
package command

// A note about unrar: On Linux there are incompatible variants of unrar.
// The unrar-free application is incomplete and fails on many .rar files,
// so 7z is offered as the fallback candidate for the format.
//
// A note about 7z: the p7zip package installs 7z, 7za and 7zr while the
// official 7-Zip for Linux console version installs 7zz.

const (
	Ar         = "ar"         // Ar is the Unix archiver used for Debian packages.
	Arc        = "arc"        // Arc is the arc decompression command.
	Arj        = "arj"        // Arj is the arj decompression command.
	BSDTar     = "bsdtar"     // BSDTar is the libarchive tar decompression command.
	Bunzip2    = "bunzip2"    // Bunzip2 is the bzip2 decompression command.
	Bzip2      = "bzip2"      // Bzip2 is the bzip2 compression command.
	CabExtract = "cabextract" // CabExtract is the Microsoft Cabinet decompression command.
	Dpkg       = "dpkg"       // Dpkg is the Debian package manager.
	GTar       = "gtar"       // GTar is the GNU tar name used on BSD and macOS systems.
	Gunzip     = "gunzip"     // Gunzip is the gzip decompression command.
	Gzip       = "gzip"       // Gzip is the gzip compression command.
	Jar        = "jar"        // Jar is the Java archive tool.
	Lha        = "lha"        // Lha is the lha/lzh decompression command.
	Lhasa      = "lhasa"      // Lhasa is the Lhasa lha/lzh decompression command.
	Lunzip     = "lunzip"     // Lunzip is the lzip decompression command.
	Lzip       = "lzip"       // Lzip is the lzip compression command.
	Lzma       = "lzma"       // Lzma is the lzma compression command.
	Lzop       = "lzop"       // Lzop is the lzop compression command.
	Tar        = "tar"        // Tar is the tar decompression command.
	Unar       = "unar"       // Unar is The Unarchiver console decompression command.
	Uncompress = "uncompress" // Uncompress is the Unix compress (.Z) decompression command.
	Unlzma     = "unlzma"     // Unlzma is the lzma decompression command.
	Unrar      = "unrar"      // Unrar is the rar decompression command.
	Unxz       = "unxz"       // Unxz is the xz decompression command.
	Unzip      = "unzip"      // Unzip is the zip decompression command.
	Unzstd     = "unzstd"     // Unzstd is the Zstandard decompression command.
	Xz         = "xz"         // Xz is the xz compression command.
	Zip7       = "7z"         // Zip7 is the p7zip 7-Zip command.
	Zip7a      = "7za"        // Zip7a is the standalone p7zip 7-Zip command.
	Zip7r      = "7zr"        // Zip7r is the reduced p7zip 7-Zip command.
	Zip7z      = "7zz"        // Zip7z is the official 7-Zip for Linux console command.
	Zstd       = "zstd"       // Zstd is the Zstandard compression command.
)
