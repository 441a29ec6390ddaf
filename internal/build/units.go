package build

import "sort"

// UnitSpec names a build unit and the directories it is collected from.
// A nil Extensions falls back to SourceExtensions.
type UnitSpec struct {
	Name       string
	Roots      []string
	Extensions []string
}

// Unit is a named, independently buildable group of source files.
type Unit struct {
	Name    string
	Sources SourceSet
}

// Assembler turns unit specs into build units by scanning their roots.
type Assembler struct {
	// Logf receives per-unit file counts. Informational only; nil disables.
	Logf func(format string, args ...any)
}

// Assemble scans every spec and returns the non-empty units, in spec order.
// Units whose roots yielded no sources are dropped: an empty library is
// wasted work and may be rejected by the compiler driver. Roots of one spec
// may overlap; files are counted once per unit.
func (a *Assembler) Assemble(specs []UnitSpec) ([]Unit, error) {
	var units []Unit

	for _, spec := range specs {
		exts := spec.Extensions
		if exts == nil {
			exts = SourceExtensions
		}

		seen := make(map[string]bool)
		var sources SourceSet
		for _, root := range spec.Roots {
			scanned, err := ScanTree(root, exts)
			if err != nil {
				return nil, err
			}
			for _, path := range scanned {
				if !seen[path] {
					seen[path] = true
					sources = append(sources, path)
				}
			}
		}
		sort.Strings(sources)

		a.logf("%s: %d source files", spec.Name, len(sources))
		if sources.Empty() {
			continue
		}
		units = append(units, Unit{Name: spec.Name, Sources: sources})
	}

	return units, nil
}

func (a *Assembler) logf(format string, args ...any) {
	if a.Logf != nil {
		a.Logf(format, args...)
	}
}
