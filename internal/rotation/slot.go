// Package rotation selects backup destination slots on a Tower-of-Hanoi
// schedule: slot a is written every other day, b every fourth, c every
// eighth, d every sixteenth, e every thirty-second, and f collects the
// remaining, rarely-touched days. Older data therefore survives
// proportionally longer before being overwritten.
//
// The package is pure: no clock, no state, no side effects. Callers derive
// the day-of-year from the clock (or a flag) and pass it in explicitly.
package rotation

import "fmt"

// Slot is a backup destination label, "a" through "f". The label is used by
// callers as the final path segment under the backup mount point.
type Slot string

const (
	SlotA Slot = "a"
	SlotB Slot = "b"
	SlotC Slot = "c"
	SlotD Slot = "d"
	SlotE Slot = "e"
	SlotF Slot = "f"
)

// VerifyMode selects how file comparison is done when writing a slot.
type VerifyMode int

const (
	// VerifyQuick compares size and mtime only (rsync default).
	VerifyQuick VerifyMode = iota
	// VerifyChecksum compares full file contents.
	VerifyChecksum
)

func (m VerifyMode) String() string {
	if m == VerifyChecksum {
		return "checksum"
	}
	return "quick"
}

// bitPosition maps (2^k mod 37) to k for 32-bit powers of two. 37 is prime
// with 2 as a primitive root, so each power lands on its own index. Residues
// no 32-bit power of two produces hold a filler value.
var bitPosition = [37]int{
	32, 0, 1, 26, 2, 23, 27, 0, 3, 16, 24, 30, 28, 11, 0, 13, 4,
	7, 17, 0, 25, 22, 31, 15, 29, 10, 12, 6, 0, 21, 14, 9, 5,
	20, 8, 19, 18,
}

// SelectSlot returns the destination slot for the given ordinal day of the
// year. The lowest set bit of day drives the Hanoi sequence: bit 0 maps to
// slot a, bit 1 to b, and so on up to bit 4 for e; all higher bits fall into
// the archival slot f.
//
// Day 1 is January 1st. Values above 366 are accepted and produce a
// deterministic label, since the caller may be running an artificial
// calendar. Zero and negative days are rejected: the two's-complement bit
// isolation below is meaningless for them.
func SelectSlot(day int) (Slot, error) {
	if day < 1 {
		return "", fmt.Errorf("invalid day of year %d: must be positive", day)
	}

	bit := day & (-day)
	rank := bitPosition[bit%37]

	switch rank {
	case 0:
		return SlotA, nil
	case 1:
		return SlotB, nil
	case 2:
		return SlotC, nil
	case 3:
		return SlotD, nil
	case 4:
		return SlotE, nil
	default:
		return SlotF, nil
	}
}

// VerifyMode returns the comparison mode a writer should use for the slot.
// Slot f holds data longest between rewrites, so it gets the expensive full
// content check; the frequently recycled slots get the quick one.
func (s Slot) VerifyMode() VerifyMode {
	if s == SlotF {
		return VerifyChecksum
	}
	return VerifyQuick
}

// Labels returns all slot labels in rotation order, most to least
// frequently written.
func Labels() []Slot {
	return []Slot{SlotA, SlotB, SlotC, SlotD, SlotE, SlotF}
}
