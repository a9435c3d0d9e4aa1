// Package trust decides whether an executable found on the search path
// lives in a system binary directory and so may be run by the extractor.
//
// A name based lookup such as [os/exec.LookPath] honors the PATH environment
// variable, which a user or an attacker can point at any directory.
// IsTrusted resolves every symbolic link of a found program and accepts it
// only when the real file sits under one of the allow-listed directories
// for the host operating system. Unknown operating systems have an empty
// allow-list and so nothing is ever trusted.
package trust

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Dirs returns a copy of the allow-listed system binary directories for the host.
func Dirs() []string {
	return slices.Clone(dirs)
}

// IsTrusted returns true if the canonical, symlink free form of the named
// program is located within an allow-listed system directory.
// Any failure to resolve the path, such as a missing file, a permission error
// or a symlink loop, returns false.
func IsTrusted(name string) bool {
	if name == "" {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return false
	}
	return within(canonical, dirs)
}

// within returns true if path is one of the dirs or is nested below one of them.
// The match is by whole path elements, so /usr/binx is not within /usr/bin.
func within(path string, dirs []string) bool {
	path = filepath.Clean(path)
	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		if path == dir {
			return true
		}
		if strings.HasPrefix(path, dir+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
