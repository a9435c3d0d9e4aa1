//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package trust

// dirs is empty so that IsTrusted fails closed on untested systems.
var dirs = []string{}
