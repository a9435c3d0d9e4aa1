package main

import (
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// expand replaces the glob patterns of the arguments with the matching files,
// so a quoted pattern such as 'downloads/**/*.zip' finds the archives of every
// subdirectory. An argument that is not a pattern, or that matches nothing,
// is kept as given.
func expand(args []string) ([]string, error) {
	files := make([]string, 0, len(args))
	for _, arg := range args {
		if !meta(arg) {
			files = append(files, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			files = append(files, arg)
			continue
		}
		slices.Sort(matches)
		files = append(files, matches...)
	}
	return files, nil
}

// meta returns true when the argument holds a glob pattern character.
func meta(arg string) bool {
	for _, r := range arg {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
