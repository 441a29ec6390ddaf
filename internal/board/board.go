// Package board describes hardware targets for the Tab5duino framework.
//
// A board profile carries the metadata that distinguishes one target from
// another: MCU, CPU frequency, flash geometry and optional PSRAM. Profiles
// are loaded from YAML manifests and are read-only after construction.
package board

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for fields a manifest may leave unset. During board bring-up
// manifests are often partial, so absence is filled in rather than rejected.
const (
	DefaultMCU       = "esp32p4"
	DefaultCPUFreqHz = 400000000
	DefaultFlashSize = "16MB"
	DefaultFlashMode = "qio"
	DefaultFlashFreq = "80m"
)

// Profile is the capability record for one board/variant.
type Profile struct {
	MCU       string `yaml:"mcu"`
	Variant   string `yaml:"variant"`
	CPUFreqHz int64  `yaml:"f_cpu"`
	FlashSize string `yaml:"flash_size"`
	FlashMode string `yaml:"flash_mode"`
	FlashFreq string `yaml:"flash_freq"`
	PSRAMType string `yaml:"psram_type"`
	PSRAMSize string `yaml:"psram_size"`
}

// HasPSRAM reports whether the board declares external PSRAM.
// An empty type means the capability is absent, not misconfigured.
func (p Profile) HasPSRAM() bool {
	return p.PSRAMType != ""
}

// CPUFreqMHz returns the CPU frequency in whole megahertz.
func (p Profile) CPUFreqMHz() int64 {
	return p.CPUFreqHz / 1000000
}

// ApplyDefaults fills unset fields with the documented defaults.
// PSRAM fields are left alone: no PSRAM is a valid configuration.
func (p *Profile) ApplyDefaults() {
	if p.MCU == "" {
		p.MCU = DefaultMCU
	}
	if p.CPUFreqHz == 0 {
		p.CPUFreqHz = DefaultCPUFreqHz
	}
	if p.FlashSize == "" {
		p.FlashSize = DefaultFlashSize
	}
	if p.FlashMode == "" {
		p.FlashMode = DefaultFlashMode
	}
	if p.FlashFreq == "" {
		p.FlashFreq = DefaultFlashFreq
	}
}

// Parse decodes a YAML manifest and applies defaults to unset fields.
func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse board manifest: %w", err)
	}
	p.ApplyDefaults()
	return p, nil
}

// Load reads and parses a board manifest file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read board manifest: %w", err)
	}
	return Parse(data)
}
