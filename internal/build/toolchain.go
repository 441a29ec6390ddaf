package build

import (
	"fmt"
	"strings"

	"github.com/bigbag/tabforge/internal/board"
)

// FrameworkVersion identifies the Tab5duino framework release the merged
// configuration targets.
const FrameworkVersion = "1.0.0"

// Define is a single preprocessor definition. An empty Value produces a
// bare define (-DNAME), otherwise -DNAME=VALUE.
type Define struct {
	Name  string
	Value string
}

// String renders the define the way it appears on a compiler command line.
func (d Define) String() string {
	if d.Value == "" {
		return "-D" + d.Name
	}
	return "-D" + d.Name + "=" + d.Value
}

// Config holds the merged toolchain settings handed to the external
// compiler driver: preprocessor definitions plus ordered, duplicate-free
// compiler and linker flag lists.
type Config struct {
	Defines       []Define
	CompilerFlags []string
	LinkerFlags   []string
}

// HasDefine reports whether a definition with the given name is present.
func (c *Config) HasDefine(name string) bool {
	for _, d := range c.Defines {
		if d.Name == name {
			return true
		}
	}
	return false
}

// AddDefine appends a definition unless one with the same name exists.
func (c *Config) AddDefine(name, value string) {
	if c.HasDefine(name) {
		return
	}
	c.Defines = append(c.Defines, Define{Name: name, Value: value})
}

// AddCompilerFlags appends flags not already present, preserving order.
func (c *Config) AddCompilerFlags(flags ...string) {
	c.CompilerFlags = appendUnique(c.CompilerFlags, flags)
}

// AddLinkerFlags appends flags not already present, preserving order.
func (c *Config) AddLinkerFlags(flags ...string) {
	c.LinkerFlags = appendUnique(c.LinkerFlags, flags)
}

// Clone returns an independent copy of the config.
func (c *Config) Clone() Config {
	return Config{
		Defines:       append([]Define(nil), c.Defines...),
		CompilerFlags: append([]string(nil), c.CompilerFlags...),
		LinkerFlags:   append([]string(nil), c.LinkerFlags...),
	}
}

func appendUnique(dst []string, flags []string) []string {
	for _, flag := range flags {
		found := false
		for _, existing := range dst {
			if existing == flag {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, flag)
		}
	}
	return dst
}

// BaseConfig returns the fixed toolchain settings for the ESP32-P4 RISC-V
// target: language standards, size optimization, section GC and the
// framework's warning policy.
func BaseConfig() Config {
	var c Config
	c.AddCompilerFlags(
		"-std=gnu17",
		"-std=gnu++17",
		"-fno-rtti",
		"-fno-exceptions",
		"-Os",
		"-march=rv32imafc",
		"-mabi=ilp32f",
		"-ffunction-sections",
		"-fdata-sections",
		"-Wall",
		"-Wextra",
		"-Wno-unused-parameter",
		"-Wno-unused-function",
		"-Wno-unused-variable",
		"-Wno-deprecated-declarations",
		"-Wno-missing-field-initializers",
		"-Wno-sign-compare",
	)
	c.AddLinkerFlags(
		"-Os",
		"-march=rv32imafc",
		"-mabi=ilp32f",
		"-Wl,--gc-sections",
		"-Wl,--cref",
		"-Wl,--check-sections",
		"-Wl,--unresolved-symbols=report-all",
		"-Wl,--warn-common",
		"-Wl,--warn-section-align",
		// ESP32-P4 memory map: image base and heap start.
		"-Wl,--defsym=_start=0x42000000",
		"-Wl,--defsym=_heap_start=0x50000000",
	)
	return c
}

// Merge layers board-derived settings over a base config and returns the
// result. The base is not modified. Target identity defines are applied
// unconditionally; PSRAM defines only when the profile declares a PSRAM
// type. Merging is idempotent: applying the same profile again adds
// nothing.
func Merge(base Config, profile board.Profile) Config {
	cfg := base.Clone()

	cfg.AddDefine("ARDUINO_ARCH_ESP32", "")
	cfg.AddDefine("ESP32", "")
	cfg.AddDefine("ESP32P4", "")
	cfg.AddDefine("ARDUINO_BOARD", fmt.Sprintf("%q", strings.ToUpper(profile.Variant)))
	cfg.AddDefine("F_CPU", fmt.Sprintf("%dL", profile.CPUFreqHz))
	cfg.AddDefine("ARDUINO", "10812")
	cfg.AddDefine("TAB5DUINO_FRAMEWORK", "1")
	cfg.AddDefine("__RISC_V__", "")
	cfg.AddDefine("ESP_PLATFORM", "")
	cfg.AddDefine("IDF_VER", "v5.3-dev")

	if profile.HasPSRAM() {
		cfg.AddDefine("BOARD_HAS_PSRAM", "")
		cfg.AddDefine("CONFIG_SPIRAM_SUPPORT", "1")
		cfg.AddDefine("CONFIG_SPIRAM_USE_CAPS_ALLOC", "1")
	}

	return cfg
}
