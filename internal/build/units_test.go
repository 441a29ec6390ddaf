package build

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssemble_OmitsEmptyUnits(t *testing.T) {
	dir := writeTree(t, "cores/tab5duino/Arduino.cpp", "cores/tab5duino/hal/display_hal.c")

	assembler := &Assembler{}
	units, err := assembler.Assemble([]UnitSpec{
		{Name: "FrameworkTab5duino", Roots: []string{filepath.Join(dir, "cores", "tab5duino")}},
		{Name: "FrameworkVariant", Roots: []string{filepath.Join(dir, "variants", "m5tab5")}},
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(units) != 1 {
		t.Fatalf("Assemble() returned %d units, want 1: %+v", len(units), units)
	}
	if units[0].Name != "FrameworkTab5duino" {
		t.Errorf("unit name = %q, want FrameworkTab5duino", units[0].Name)
	}
	if len(units[0].Sources) != 2 {
		t.Errorf("unit has %d sources, want 2", len(units[0].Sources))
	}
	for _, u := range units {
		if u.Sources.Empty() {
			t.Errorf("Assemble() emitted empty unit %s", u.Name)
		}
	}
}

func TestAssemble_OverlappingRootsDeduplicated(t *testing.T) {
	dir := writeTree(t,
		"cores/tab5duino/Arduino.cpp",
		"cores/tab5duino/hal/display_hal.c",
	)
	coreDir := filepath.Join(dir, "cores", "tab5duino")

	assembler := &Assembler{}
	// The HAL root is nested inside the core root, as the framework lays
	// it out; its files must not be counted twice.
	units, err := assembler.Assemble([]UnitSpec{
		{Name: "FrameworkTab5duino", Roots: []string{coreDir, filepath.Join(coreDir, "hal")}},
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(units) != 1 {
		t.Fatalf("Assemble() returned %d units, want 1", len(units))
	}
	if len(units[0].Sources) != 2 {
		t.Errorf("unit has %d sources, want 2 (hal files deduplicated): %v",
			len(units[0].Sources), units[0].Sources)
	}
}

func TestAssemble_ReportsCounts(t *testing.T) {
	dir := writeTree(t, "core/a.c", "core/b.cpp")

	var logged []string
	assembler := &Assembler{Logf: func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}}

	_, err := assembler.Assemble([]UnitSpec{
		{Name: "FrameworkTab5duino", Roots: []string{filepath.Join(dir, "core")}},
		{Name: "FrameworkVariant", Roots: []string{filepath.Join(dir, "variant")}},
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(logged) != 2 {
		t.Fatalf("logged %d lines, want 2: %v", len(logged), logged)
	}
	if !strings.Contains(logged[0], "FrameworkTab5duino") || !strings.Contains(logged[0], "2") {
		t.Errorf("log line %q missing unit name or count", logged[0])
	}
	if !strings.Contains(logged[1], "FrameworkVariant") || !strings.Contains(logged[1], "0") {
		t.Errorf("log line %q missing unit name or zero count", logged[1])
	}
}

func TestAssemble_PreservesSpecOrder(t *testing.T) {
	dir := writeTree(t, "b/x.c", "a/y.c")

	assembler := &Assembler{}
	units, err := assembler.Assemble([]UnitSpec{
		{Name: "Second", Roots: []string{filepath.Join(dir, "b")}},
		{Name: "First", Roots: []string{filepath.Join(dir, "a")}},
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(units) != 2 || units[0].Name != "Second" || units[1].Name != "First" {
		t.Errorf("Assemble() order = %+v, want spec order", units)
	}
}
