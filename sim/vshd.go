package sim

// VSHD moves: End, Corner and Crankshaft. Each has an admissibility check
// used by TryApply and a candidate enumeration used by the MoveEngine.

// endAnchor returns the single chain neighbour of end residue i.
func (c *Conformation) endAnchor(i int) (int, bool) {
	n := len(c.coords)
	switch {
	case n < 2:
		return 0, false
	case i == 0:
		return 1, true
	case i == n-1:
		return n - 2, true
	}
	return 0, false
}

// endTargets lists the free cells next to the anchor of end residue i, in
// the fixed neighbour order +X, -X, +Y, -Y.
func (c *Conformation) endTargets(i int) []Coord {
	a, ok := c.endAnchor(i)
	if !ok {
		return nil
	}
	var out []Coord
	for _, nb := range c.coords[a].Neighbours() {
		if c.free(nb) {
			out = append(out, nb)
		}
	}
	return out
}

func (c *Conformation) applyEnd(m Move) bool {
	a, ok := c.endAnchor(m.Index)
	if !ok || len(m.Targets) < 1 {
		return false
	}
	t := m.Targets[0]
	if !t.Adjacent(c.coords[a]) {
		return false
	}
	return c.place(m.Index, t)
}

// cornerTarget returns the opposite corner of the bend at residue i, if i
// sits on a 90 degree bend and that corner is free.
func (c *Conformation) cornerTarget(i int) (Coord, bool) {
	if i <= 0 || i >= len(c.coords)-1 {
		return Coord{}, false
	}
	prev, next := c.coords[i-1], c.coords[i+1]
	if !prev.Diagonal(next) {
		return Coord{}, false
	}
	t := prev.Add(next).Sub(c.coords[i])
	if !c.free(t) {
		return Coord{}, false
	}
	return t, true
}

func (c *Conformation) applyCorner(m Move) bool {
	t, ok := c.cornerTarget(m.Index)
	if !ok || len(m.Targets) < 1 || m.Targets[0] != t {
		return false
	}
	return c.place(m.Index, t)
}

// crankshaftTargets returns the reflection of the U motif i..i+3 through
// its stationary ends, if the motif is a U and both cells are free.
func (c *Conformation) crankshaftTargets(i int) ([2]Coord, bool) {
	if i < 0 || i+3 >= len(c.coords) {
		return [2]Coord{}, false
	}
	p0, p1, p2, p3 := c.coords[i], c.coords[i+1], c.coords[i+2], c.coords[i+3]
	if !p0.Adjacent(p3) {
		return [2]Coord{}, false
	}
	// 2*p0 - p1 and 2*p3 - p2
	t1 := p0.Add(p0.Sub(p1))
	t2 := p3.Add(p3.Sub(p2))
	if !c.free(t1) || !c.free(t2) {
		return [2]Coord{}, false
	}
	return [2]Coord{t1, t2}, true
}

func (c *Conformation) applyCrankshaft(m Move) bool {
	ts, ok := c.crankshaftTargets(m.Index)
	if !ok || len(m.Targets) < 2 || m.Targets[0] != ts[0] || m.Targets[1] != ts[1] {
		return false
	}
	return c.place(m.Index+1, ts[0]) && c.place(m.Index+2, ts[1])
}
