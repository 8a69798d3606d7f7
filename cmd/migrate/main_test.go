package main

import (
	"testing"
)

func TestMigrations_OrderedAndUnique(t *testing.T) {
	seen := map[int]bool{}
	prev := 0
	for _, m := range migrations() {
		if seen[m.Version] {
			t.Errorf("duplicate version %d", m.Version)
		}
		seen[m.Version] = true
		if m.Version <= prev {
			t.Errorf("%s is out of order", m.Label())
		}
		prev = m.Version
		if m.Apply == nil || m.Definition == "" {
			t.Errorf("%s is incomplete", m.Label())
		}
	}
}

func TestPendingMigrations(t *testing.T) {
	all := []Migration{{Version: 3, Name: "c"}, {Version: 1, Name: "a"}, {Version: 2, Name: "b"}}

	tests := []struct {
		name    string
		applied []AppliedMigration
		want    []int
	}{
		{"fresh database", nil, []int{1, 2, 3}},
		{"partially applied", []AppliedMigration{{Version: 1}}, []int{2, 3}},
		{"gap", []AppliedMigration{{Version: 2}}, []int{1, 3}},
		{"up to date", []AppliedMigration{{Version: 1}, {Version: 2}, {Version: 3}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pendingMigrations(all, tt.applied)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d pending, want %d", len(got), len(tt.want))
			}
			for i, m := range got {
				if m.Version != tt.want[i] {
					t.Errorf("pending[%d] = %d, want %d", i, m.Version, tt.want[i])
				}
			}
		})
	}
}

func TestMigrationChecksum(t *testing.T) {
	a := Migration{Definition: "create index x"}
	b := Migration{Definition: "create index x"}
	c := Migration{Definition: "create index y"}

	if a.Checksum() != b.Checksum() {
		t.Error("same definition should produce the same checksum")
	}
	if a.Checksum() == c.Checksum() {
		t.Error("different definitions should produce different checksums")
	}
	if indexDefinition() != indexDefinition() {
		t.Error("index definition is not stable")
	}
}

func TestChecksumDrift(t *testing.T) {
	all := []Migration{{Version: 1, Definition: "one"}, {Version: 2, Definition: "two"}}
	applied := []AppliedMigration{
		{Version: 1, Checksum: all[0].Checksum()},
		{Version: 2, Checksum: "stale"},
	}

	drifted := checksumDrift(all, applied)
	if len(drifted) != 1 || drifted[0].Version != 2 {
		t.Errorf("drifted = %+v, want version 2 only", drifted)
	}
}
