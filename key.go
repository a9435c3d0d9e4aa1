package extr

import (
	"path/filepath"
	"strings"
)

const tar = "tar"

// Key returns the lowercase extension key of the named file.
//
// The key is the last dot separated component of the base name, except for
// tape archives where the component before it is "tar", then the key is the
// compound of both, such as "tar.gz". A base name without any dot has no key
// and an empty string is returned.
func Key(name string) string {
	parts := components(name)
	if parts == nil {
		return ""
	}
	n := len(parts)
	if parts[n-2] == tar {
		return tar + "." + parts[n-1]
	}
	return parts[n-1]
}

// keys returns the extension keys to try for the named file, in the order of precedence.
// A compound tar key is followed by its last component, so "x.tar.lz" also tries "lz".
func keys(name string) []string {
	key := Key(name)
	if key == "" {
		return nil
	}
	if last, ok := strings.CutPrefix(key, tar+"."); ok && last != "" {
		return []string{key, last}
	}
	return []string{key}
}

// components returns the lowercase dot separated components of the base name,
// or nil when the name has no dot or the last component is empty.
func components(name string) []string {
	base := strings.ToLower(filepath.Base(name))
	if base == "." || base == string(filepath.Separator) {
		return nil
	}
	parts := strings.Split(base, ".")
	if len(parts) < 2 || parts[len(parts)-1] == "" {
		return nil
	}
	return parts
}
