package trust

// Homebrew on Apple silicon installs to /opt/homebrew and MacPorts to /opt/local.
var dirs = []string{
	"/usr/bin",
	"/usr/sbin",
	"/bin",
	"/sbin",
	"/usr/local/bin",
	"/usr/local/sbin",
	"/opt/homebrew/bin",
	"/opt/homebrew/sbin",
	"/opt/local/bin",
	"/opt/local/sbin",
}
