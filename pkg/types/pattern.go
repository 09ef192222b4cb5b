package types

import "fmt"

// Pattern is a byte sequence the search engine looks for, identified by a
// stable ID (e.g. "fmt.zip") and a human-readable name.
type Pattern struct {
	// ID uniquely identifies the pattern within a catalogue.
	ID string

	// Name is a display name for reporting.
	Name string

	// Bytes is the exact sequence to match. Never empty for a valid pattern.
	Bytes []byte
}

// Length returns the number of bytes in the pattern.
func (p *Pattern) Length() int {
	return len(p.Bytes)
}

func (p *Pattern) String() string {
	return fmt.Sprintf("%s (%d bytes)", p.ID, len(p.Bytes))
}
