package flashplan

import "testing"

func TestLookupChip_Aliases(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"esp32p4", "esp32p4"},
		{"p4", "esp32p4"},
		{"esp32c3", "esp32c3"},
		{"c3", "esp32c3"},
	}

	for _, tc := range tests {
		chip, err := LookupChip(tc.id)
		if err != nil {
			t.Errorf("LookupChip(%q) error = %v", tc.id, err)
			continue
		}
		if chip.ID != tc.want {
			t.Errorf("LookupChip(%q).ID = %q, want %q", tc.id, chip.ID, tc.want)
		}
	}
}

func TestLookupChip_Unknown(t *testing.T) {
	_, err := LookupChip("attiny85")
	if err == nil {
		t.Fatal("LookupChip() expected error for unknown chip")
	}
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleBootloader, "bootloader.bin"},
		{RolePartitionTable, "partitions.bin"},
		{RoleApplication, "firmware.bin"},
		{Role("other"), ""},
	}
	for _, tc := range tests {
		if got := ArtifactName(tc.role); got != tc.want {
			t.Errorf("ArtifactName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestKnownChips_Sorted(t *testing.T) {
	ids := KnownChips()
	if len(ids) < 2 {
		t.Fatalf("KnownChips() = %v, want at least esp32c3 and esp32p4", ids)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("KnownChips() not sorted/unique: %v", ids)
		}
	}
}
