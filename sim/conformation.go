package sim

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"
)

// Coord is a point of the 2D square lattice.
type Coord struct {
	X, Y int
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord { return Coord{c.X + d.X, c.Y + d.Y} }

// Sub returns the vector from d to c.
func (c Coord) Sub(d Coord) Coord { return Coord{c.X - d.X, c.Y - d.Y} }

// Manhattan returns the L1 distance between c and d.
func (c Coord) Manhattan(d Coord) int { return abs(c.X-d.X) + abs(c.Y-d.Y) }

// Adjacent reports whether c and d are orthogonal lattice neighbours.
func (c Coord) Adjacent(d Coord) bool { return c.Manhattan(d) == 1 }

// Diagonal reports whether c and d are diagonal lattice neighbours.
func (c Coord) Diagonal(d Coord) bool { return abs(c.X-d.X) == 1 && abs(c.Y-d.Y) == 1 }

// Neighbours returns the 4 orthogonal neighbours in the fixed order +X, -X, +Y, -Y.
func (c Coord) Neighbours() [4]Coord {
	return [4]Coord{c.Add(directions[0]), c.Add(directions[1]), c.Add(directions[2]), c.Add(directions[3])}
}

var directions = [4]Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// placement is one journal entry: residue index moved away from `from`.
type placement struct {
	index int
	from  Coord
}

// Conformation is a lattice walk of a Sequence with its occupancy index.
//
// Invariants, true after every completed call:
//   - all coordinates are distinct (self-avoiding)
//   - consecutive coordinates are lattice-adjacent (connected)
//   - occ maps exactly the occupied cells to their residue index
//
// Not safe for concurrent use; each chain owns its conformation.
type Conformation struct {
	seq    Sequence
	coords []Coord
	occ    map[Coord]int

	journal  []placement // placements of the last successful TryApply
	undoable bool
}

// NewLine returns the straight conformation x = 0..n-1, y = 0.
func NewLine(seq Sequence) *Conformation {
	coords := make([]Coord, len(seq))
	for i := range coords {
		coords[i] = Coord{X: i}
	}
	return newConformation(seq, coords)
}

// NewConformation builds a conformation from explicit coordinates and
// rejects walks that break either invariant.
func NewConformation(seq Sequence, coords []Coord) (*Conformation, error) {
	if len(seq) != len(coords) {
		return nil, fmt.Errorf("sequence has %d residues but %d coordinates were given", len(seq), len(coords))
	}
	c := newConformation(seq, append([]Coord(nil), coords...))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// maxWalkAttempts bounds restarts of the random self-avoiding walk.
const maxWalkAttempts = 1000

// NewRandomWalk grows a random self-avoiding walk from the origin, each
// residue taking a uniformly chosen free neighbour of its predecessor.
// Dead ends restart the walk; after maxWalkAttempts the straight line is used.
func NewRandomWalk(seq Sequence, rng *rand.Rand) *Conformation {
	n := len(seq)
	for attempt := 0; attempt < maxWalkAttempts; attempt++ {
		coords := make([]Coord, 0, n)
		used := make(map[Coord]bool, n)
		cur := Coord{}
		coords = append(coords, cur)
		used[cur] = true
		for len(coords) < n {
			var free []Coord
			for _, nb := range cur.Neighbours() {
				if !used[nb] {
					free = append(free, nb)
				}
			}
			if len(free) == 0 {
				break
			}
			cur = free[rng.Intn(len(free))]
			coords = append(coords, cur)
			used[cur] = true
		}
		if len(coords) == n {
			return newConformation(seq, coords)
		}
	}
	logrus.Warnf("random walk: no self-avoiding walk of %d residues after %d attempts; using straight line", n, maxWalkAttempts)
	return NewLine(seq)
}

func newConformation(seq Sequence, coords []Coord) *Conformation {
	occ := make(map[Coord]int, len(coords))
	for i, p := range coords {
		occ[p] = i
	}
	return &Conformation{seq: seq, coords: coords, occ: occ}
}

// Len returns the number of residues.
func (c *Conformation) Len() int { return len(c.coords) }

// Sequence returns the residue classes of the chain.
func (c *Conformation) Sequence() Sequence { return c.seq }

// At returns the cell of residue i.
func (c *Conformation) At(i int) Coord { return c.coords[i] }

// Coords returns a copy of the walk.
func (c *Conformation) Coords() []Coord {
	return append([]Coord(nil), c.coords...)
}

// OccupantAt returns the residue occupying p, if any.
func (c *Conformation) OccupantAt(p Coord) (int, bool) {
	i, ok := c.occ[p]
	return i, ok
}

func (c *Conformation) free(p Coord) bool {
	_, taken := c.occ[p]
	return !taken
}

// Clone returns a deep copy without undo history.
func (c *Conformation) Clone() *Conformation {
	return newConformation(c.seq, c.Coords())
}

// Equal reports whether both walks visit the same cells in the same order.
func (c *Conformation) Equal(o *Conformation) bool {
	if len(c.coords) != len(o.coords) {
		return false
	}
	for i := range c.coords {
		if c.coords[i] != o.coords[i] {
			return false
		}
	}
	return true
}

// Energy returns -1 per unordered pair of H residues that are lattice
// neighbours without being chain neighbours. O(n) via the occupancy index.
func (c *Conformation) Energy() int {
	e := 0
	for i, p := range c.coords {
		if c.seq[i] != Hydrophobic {
			continue
		}
		for _, nb := range p.Neighbours() {
			j, ok := c.occ[nb]
			if ok && j > i+1 && c.seq[j] == Hydrophobic {
				e--
			}
		}
	}
	return e
}

// Validate checks self-avoidance, connectivity and occupancy consistency.
// Diagnostics only; not called on the hot path unless invariant checking
// is enabled.
func (c *Conformation) Validate() error {
	if len(c.occ) != len(c.coords) {
		return fmt.Errorf("%w: %d residues but %d occupied cells", ErrInvariantViolation, len(c.coords), len(c.occ))
	}
	for i, p := range c.coords {
		if j, ok := c.occ[p]; !ok || j != i {
			return fmt.Errorf("%w: residue %d at %v collides or is not indexed", ErrInvariantViolation, i, p)
		}
		if i > 0 && !c.coords[i-1].Adjacent(p) {
			return fmt.Errorf("%w: residues %d and %d are not bonded (%v, %v)", ErrInvariantViolation, i-1, i, c.coords[i-1], p)
		}
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (c *Conformation) IsValid() bool { return c.Validate() == nil }

// TryApply performs m if it is admissible in the current state and reports
// whether it did. On false the conformation is unchanged.
func (c *Conformation) TryApply(m Move) bool {
	c.journal = c.journal[:0]
	c.undoable = false

	var ok bool
	switch m.Kind {
	case MoveEnd:
		ok = c.applyEnd(m)
	case MoveCorner:
		ok = c.applyCorner(m)
	case MoveCrankshaft:
		ok = c.applyCrankshaft(m)
	case MovePull:
		ok = c.applyPull(m)
	}
	if !ok {
		c.rollback()
		return false
	}
	c.undoable = true
	return true
}

// Undo reverts the last successful TryApply. It is a no-op after a failed
// apply or a previous Undo.
func (c *Conformation) Undo() {
	if !c.undoable {
		return
	}
	c.rollback()
	c.undoable = false
}

// place moves residue i to the free cell to, journaling the old cell.
func (c *Conformation) place(i int, to Coord) bool {
	if !c.free(to) {
		return false
	}
	from := c.coords[i]
	delete(c.occ, from)
	c.coords[i] = to
	c.occ[to] = i
	c.journal = append(c.journal, placement{index: i, from: from})
	return true
}

// rollback replays the journal backwards, restoring every moved residue.
func (c *Conformation) rollback() {
	for k := len(c.journal) - 1; k >= 0; k-- {
		pl := c.journal[k]
		delete(c.occ, c.coords[pl.index])
		c.coords[pl.index] = pl.from
		c.occ[pl.from] = pl.index
	}
	c.journal = c.journal[:0]
}

// Render draws the walk as ASCII art: residues as H/P, bonds as - and |.
// The first residue is drawn in lower case.
func (c *Conformation) Render() string {
	if len(c.coords) == 0 {
		return ""
	}
	minX, maxX, minY, maxY := c.coords[0].X, c.coords[0].X, c.coords[0].Y, c.coords[0].Y
	for _, p := range c.coords {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	w, h := 2*(maxX-minX)+1, 2*(maxY-minY)+1
	grid := make([][]byte, h)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(" ", w))
	}
	cell := func(p Coord) (int, int) { return 2 * (maxY - p.Y), 2 * (p.X - minX) }
	for i, p := range c.coords {
		r, col := cell(p)
		letter := c.seq[i].String()
		if i == 0 {
			letter = strings.ToLower(letter)
		}
		grid[r][col] = letter[0]
		if i > 0 {
			pr, pc := cell(c.coords[i-1])
			if pr == r {
				grid[r][(pc+col)/2] = '-'
			} else {
				grid[(pr+r)/2][col] = '|'
			}
		}
	}
	lines := make([]string, h)
	for r := range grid {
		lines[r] = strings.TrimRight(string(grid[r]), " ")
	}
	return strings.Join(lines, "\n")
}
