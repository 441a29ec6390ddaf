package build

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

// writeTree creates the given relative files under a temp dir and returns
// the dir.
func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("// src\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScanTree_FiltersByExtension(t *testing.T) {
	dir := writeTree(t,
		"Arduino.cpp",
		"startup.S",
		"syscalls.c",
		"Arduino.h",
		"README.md",
		"notes.txt",
	)

	sources, err := ScanTree(dir, SourceExtensions)
	if err != nil {
		t.Fatalf("ScanTree() error = %v", err)
	}

	if len(sources) != 3 {
		t.Fatalf("ScanTree() found %d files, want 3: %v", len(sources), sources)
	}
	for _, s := range sources {
		base := filepath.Base(s)
		if base == "Arduino.h" || base == "README.md" || base == "notes.txt" {
			t.Errorf("ScanTree() included non-source file %s", base)
		}
	}
}

func TestScanTree_Recursive(t *testing.T) {
	dir := writeTree(t,
		"Arduino.cpp",
		"hal/display_hal.c",
		"hal/touch/touch_hal.cpp",
	)

	sources, err := ScanTree(dir, SourceExtensions)
	if err != nil {
		t.Fatalf("ScanTree() error = %v", err)
	}
	if len(sources) != 3 {
		t.Fatalf("ScanTree() found %d files, want 3: %v", len(sources), sources)
	}
}

func TestScanTree_AbsoluteSortedStable(t *testing.T) {
	dir := writeTree(t, "z.c", "a.c", "m/sub.c")

	first, err := ScanTree(dir, []string{".c"})
	if err != nil {
		t.Fatalf("ScanTree() error = %v", err)
	}

	if !sort.StringsAreSorted(first) {
		t.Errorf("ScanTree() result not sorted: %v", first)
	}
	for _, s := range first {
		if !filepath.IsAbs(s) {
			t.Errorf("ScanTree() returned relative path %s", s)
		}
	}

	second, err := ScanTree(dir, []string{".c"})
	if err != nil {
		t.Fatalf("ScanTree() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scans differ:\n  first:  %v\n  second: %v", first, second)
	}
}

func TestScanTree_MissingRootIsEmpty(t *testing.T) {
	sources, err := ScanTree(filepath.Join(t.TempDir(), "no-such-dir"), SourceExtensions)
	if err != nil {
		t.Fatalf("ScanTree() error = %v, want nil for missing root", err)
	}
	if !sources.Empty() {
		t.Errorf("ScanTree() = %v, want empty set for missing root", sources)
	}
}

func TestScanTree_CaseSensitiveExtensions(t *testing.T) {
	dir := writeTree(t, "startup.S", "legacy.s")

	sources, err := ScanTree(dir, []string{".S"})
	if err != nil {
		t.Fatalf("ScanTree() error = %v", err)
	}
	if len(sources) != 1 || filepath.Base(sources[0]) != "startup.S" {
		t.Errorf("ScanTree() = %v, want only startup.S", sources)
	}
}
