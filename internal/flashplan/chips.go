// Package flashplan validates build artifacts and turns them into an
// ordered, offset-addressed flashing plan for one upload attempt.
package flashplan

import "sort"

// Role tags the purpose of a flash image within a plan.
type Role string

const (
	RoleBootloader     Role = "bootloader"
	RolePartitionTable Role = "partition-table"
	RoleApplication    Role = "application"
)

// Default upload baud rate.
const DefaultBaudRate = 460800

// artifactNames is the fixed naming convention for build outputs.
var artifactNames = map[Role]string{
	RoleBootloader:     "bootloader.bin",
	RolePartitionTable: "partitions.bin",
	RoleApplication:    "firmware.bin",
}

// ArtifactName returns the conventional file name for a role, or "" for
// an unknown role.
func ArtifactName(role Role) string {
	return artifactNames[role]
}

// ChipProfile describes one chip's flash layout. Offsets are a property of
// the chip's boot ROM and partition scheme, never configurable per upload.
type ChipProfile struct {
	ID      string
	Aliases []string
	Offsets map[Role]uint32
	// Required lists the roles a default (full) image set must provide.
	Required []Role
}

var chips = make(map[string]*ChipProfile)

// Register adds a chip profile to the registry under its ID and aliases.
func Register(p *ChipProfile) {
	chips[p.ID] = p
	for _, alias := range p.Aliases {
		chips[alias] = p
	}
}

// LookupChip resolves a chip identifier or alias to its profile.
func LookupChip(id string) (*ChipProfile, error) {
	p, ok := chips[id]
	if !ok {
		return nil, &UnknownChipError{Chip: id}
	}
	return p, nil
}

// KnownChips returns the registered canonical chip IDs, sorted.
func KnownChips() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range chips {
		if !seen[p.ID] {
			seen[p.ID] = true
			ids = append(ids, p.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

func init() {
	Register(&ChipProfile{
		ID:      "esp32p4",
		Aliases: []string{"p4"},
		Offsets: map[Role]uint32{
			RoleBootloader:     0x0000,
			RolePartitionTable: 0x8000,
			RoleApplication:    0x10000,
		},
		Required: []Role{RoleBootloader, RolePartitionTable, RoleApplication},
	})
	Register(&ChipProfile{
		ID:      "esp32c3",
		Aliases: []string{"c3"},
		Offsets: map[Role]uint32{
			RoleBootloader:     0x0000,
			RolePartitionTable: 0x8000,
			RoleApplication:    0x10000,
		},
		Required: []Role{RoleBootloader, RolePartitionTable, RoleApplication},
	})
}
