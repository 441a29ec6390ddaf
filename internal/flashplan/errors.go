package flashplan

import (
	"fmt"
	"strings"
)

// MissingArtifactError reports every required artifact absent from the
// build output directory. A plan is never constructed from a partial set,
// so the full list is collected before failing.
type MissingArtifactError struct {
	Missing []string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("missing flash artifacts: %s", strings.Join(e.Missing, ", "))
}

// UnknownChipError reports a chip identifier with no registered profile.
type UnknownChipError struct {
	Chip string
}

func (e *UnknownChipError) Error() string {
	return fmt.Sprintf("unknown chip %q (known: %s)", e.Chip, strings.Join(KnownChips(), ", "))
}
