package sim

import "fmt"

// MoveKind tags the variant carried by a Move.
type MoveKind int

const (
	MoveEnd MoveKind = iota
	MoveCorner
	MoveCrankshaft
	MovePull
)

var moveKindNames = [...]string{"end", "corner", "crankshaft", "pull"}

func (k MoveKind) String() string {
	if k < 0 || int(k) >= len(moveKindNames) {
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
	return moveKindNames[k]
}

// PullDirection says which neighbour of the pulled residue follows it.
type PullDirection int

const (
	// PullBackward drags residue i-1 after i; the anchor is i+1.
	PullBackward PullDirection = iota
	// PullForward drags residue i+1 after i; the anchor is i-1.
	PullForward
)

// step is the index increment walking from the pulled residue along the
// residues that follow it.
func (d PullDirection) step() int {
	if d == PullForward {
		return 1
	}
	return -1
}

func (d PullDirection) String() string {
	if d == PullForward {
		return "forward"
	}
	return "backward"
}

// Move is a proposed local mutation.
//
//   - End, Corner: Targets[0] is the new cell of residue Index.
//   - Crankshaft: Index is the first residue of the U motif; Targets are
//     the new cells of Index+1 and Index+2.
//   - Pull: Targets[0] is the new cell (L) of residue Index, Targets[1]
//     the cell (C) its pulled neighbour moves to. Dir selects the neighbour.
type Move struct {
	Kind    MoveKind
	Index   int
	Dir     PullDirection
	Targets []Coord
}

func (m Move) String() string {
	if m.Kind == MovePull {
		return fmt.Sprintf("%s(%d,%s)->%v", m.Kind, m.Index, m.Dir, m.Targets)
	}
	return fmt.Sprintf("%s(%d)->%v", m.Kind, m.Index, m.Targets)
}
