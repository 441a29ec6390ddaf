package embedded

import (
	_ "embed"
)

//go:embed m5tab5.yaml
var defaultBoard []byte

// DefaultBoard returns the embedded M5Stack Tab5 board manifest, used when
// no manifest file is supplied on the command line.
func DefaultBoard() []byte {
	return defaultBoard
}
