package sim

import (
	"fmt"
	"strings"
)

// Residue is the HP class of one monomer. Fixed once a sequence is loaded.
type Residue uint8

const (
	// Polar residues never contribute to the energy.
	Polar Residue = iota
	// Hydrophobic residues contribute -1 per non-bonded H-H contact.
	Hydrophobic
)

// String returns "H" or "P".
func (r Residue) String() string {
	if r == Hydrophobic {
		return "H"
	}
	return "P"
}

// Sequence is an ordered chain of residues; index i is residue i.
type Sequence []Residue

// ParseSequence converts an H/P string (case-insensitive, whitespace ignored).
func ParseSequence(s string) (Sequence, error) {
	s = strings.Join(strings.Fields(strings.ToUpper(s)), "")
	if s == "" {
		return nil, fmt.Errorf("empty HP sequence")
	}
	seq := make(Sequence, len(s))
	for i, ch := range s {
		switch ch {
		case 'H':
			seq[i] = Hydrophobic
		case 'P':
			seq[i] = Polar
		default:
			return nil, fmt.Errorf("invalid HP letter %q at position %d", ch, i+1)
		}
	}
	return seq, nil
}

// MustParseSequence is ParseSequence for literals; it panics on bad input.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// String renders the sequence as H/P letters.
func (s Sequence) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteString(r.String())
	}
	return b.String()
}

// HydrophobicCount returns the number of H residues.
func (s Sequence) HydrophobicCount() int {
	n := 0
	for _, r := range s {
		if r == Hydrophobic {
			n++
		}
	}
	return n
}
