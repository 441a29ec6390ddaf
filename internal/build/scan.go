// Package build assembles the compile-side configuration for a firmware
// build: source discovery, build unit grouping and toolchain flag merging.
// It produces inputs for an external compiler driver and never compiles
// anything itself.
package build

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtensions are the file types recognized as compilable framework
// sources.
var SourceExtensions = []string{".c", ".cpp", ".S"}

// SourceSet is an ordered list of absolute source file paths, unique by
// path. Built once per scan and read-only afterward.
type SourceSet []string

// Empty reports whether the set contains no files.
func (s SourceSet) Empty() bool {
	return len(s) == 0
}

// ScanTree walks root recursively and returns every file whose name ends
// with one of the given extensions. The result is deduplicated and sorted
// lexicographically so repeated scans of an unchanged tree are identical.
//
// A missing root yields an empty set, not an error: optional directories
// (e.g. a board with no variant folder) are a normal condition.
func ScanTree(root string, extensions []string) (SourceSet, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(absRoot); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	seen := make(map[string]bool)
	var sources SourceSet

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasSourceExt(d.Name(), extensions) {
			return nil
		}
		if !seen[path] {
			seen[path] = true
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(sources)
	return sources, nil
}

func hasSourceExt(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
