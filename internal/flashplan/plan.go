package flashplan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bigbag/tabforge/internal/board"
)

// Image is one binary artifact and the fixed offset it is written to.
type Image struct {
	Offset uint32
	Role   Role
	Path   string
}

// Overrides replace board-derived flash parameters when non-empty.
type Overrides struct {
	FlashMode string
	FlashFreq string
	FlashSize string
}

// Request carries everything needed to build a plan for one upload
// attempt.
type Request struct {
	ArtifactDir string
	Chip        string
	Port        string
	Baud        int
	// Roles selects the required artifact set; nil means the chip's
	// default full set.
	Roles     []Role
	Board     board.Profile
	Overrides Overrides
}

// Plan is the fully resolved flash command for one upload attempt:
// images sorted ascending by offset plus connection parameters. Plans are
// built fresh per attempt and never cached, since ports and binaries may
// change between attempts.
type Plan struct {
	Chip      string
	Port      string
	Baud      int
	FlashMode string
	FlashFreq string
	FlashSize string
	Images    []Image
}

// Build validates the requested artifacts and constructs a plan.
//
// Every required artifact must exist under ArtifactDir; if any are absent
// the returned error is a *MissingArtifactError listing all of them and no
// plan is produced. On success every image path was confirmed to exist at
// build time and images are sorted ascending by offset with no collisions.
func Build(req Request) (*Plan, error) {
	chip, err := LookupChip(req.Chip)
	if err != nil {
		return nil, err
	}

	roles := req.Roles
	if roles == nil {
		roles = chip.Required
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("no artifact roles requested for chip %s", chip.ID)
	}

	var images []Image
	var missing []string
	offsets := make(map[uint32]Role)

	for _, role := range roles {
		name := ArtifactName(role)
		if name == "" {
			return nil, fmt.Errorf("no artifact naming convention for role %q", role)
		}
		offset, ok := chip.Offsets[role]
		if !ok {
			return nil, fmt.Errorf("chip %s has no flash offset for role %s", chip.ID, role)
		}
		if prev, dup := offsets[offset]; dup {
			return nil, fmt.Errorf("chip %s: roles %s and %s share offset 0x%04X", chip.ID, prev, role, offset)
		}
		offsets[offset] = role

		path := filepath.Join(req.ArtifactDir, name)
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
			continue
		}
		images = append(images, Image{Offset: offset, Role: role, Path: path})
	}

	if len(missing) > 0 {
		return nil, &MissingArtifactError{Missing: missing}
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Offset < images[j].Offset
	})

	baud := req.Baud
	if baud == 0 {
		baud = DefaultBaudRate
	}

	return &Plan{
		Chip:      chip.ID,
		Port:      req.Port,
		Baud:      baud,
		FlashMode: override(req.Overrides.FlashMode, req.Board.FlashMode),
		FlashFreq: override(req.Overrides.FlashFreq, req.Board.FlashFreq),
		FlashSize: override(req.Overrides.FlashSize, req.Board.FlashSize),
		Images:    images,
	}, nil
}

func override(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
