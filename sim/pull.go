package sim

// Pull moves (Lesh, Mitzenmacher and Whitesides, 2003) for the square lattice.
//
// Residue i is pulled to a cell L; its pulled neighbour p = i+s follows to
// C, and every further residue j moves into the cell vacated two positions
// ahead of it (old[j-2s]) until one is already bonded to its predecessor or
// the chain end is passed. With an anchor a = i-s, L is adjacent to a and
// diagonal to i, and C = L + (i - a) closes the square a, i, C, L. A chain
// end pulled inward has no anchor; L and C are then any two adjacent free
// cells with C next to the end.

// pullGeometry resolves the anchor and pulled neighbour of residue i.
func (c *Conformation) pullGeometry(i int, dir PullDirection) (anchor, prev int, hasAnchor, hasPrev bool) {
	n := len(c.coords)
	s := dir.step()
	anchor, prev = i-s, i+s
	hasAnchor = anchor >= 0 && anchor < n
	hasPrev = prev >= 0 && prev < n
	return anchor, prev, hasAnchor, hasPrev
}

// pullTargets enumerates the admissible (L, C) pairs for pulling residue i
// in direction dir, in a fixed order.
func (c *Conformation) pullTargets(i int, dir PullDirection) [][2]Coord {
	if i < 0 || i >= len(c.coords) {
		return nil
	}
	anchor, prev, hasAnchor, hasPrev := c.pullGeometry(i, dir)
	if !hasAnchor && !hasPrev {
		return nil
	}
	pi := c.coords[i]

	var out [][2]Coord
	if hasAnchor {
		pa := c.coords[anchor]
		v := pi.Sub(pa)
		for _, perp := range [2]Coord{{-v.Y, v.X}, {v.Y, -v.X}} {
			l := pa.Add(perp)
			cc := l.Add(v)
			if !c.free(l) {
				continue
			}
			if hasPrev && !c.free(cc) && cc != c.coords[prev] {
				continue
			}
			out = append(out, [2]Coord{l, cc})
		}
		return out
	}

	for _, cc := range pi.Neighbours() {
		if !c.free(cc) {
			continue
		}
		for _, l := range cc.Neighbours() {
			if c.free(l) {
				out = append(out, [2]Coord{l, cc})
			}
		}
	}
	return out
}

func (c *Conformation) applyPull(m Move) bool {
	i := m.Index
	if i < 0 || i >= len(c.coords) || len(m.Targets) < 2 {
		return false
	}
	anchor, prev, hasAnchor, hasPrev := c.pullGeometry(i, m.Dir)
	if !hasAnchor && !hasPrev {
		return false
	}
	l, cc := m.Targets[0], m.Targets[1]
	pi := c.coords[i]
	if hasAnchor {
		pa := c.coords[anchor]
		if !l.Adjacent(pa) || !l.Diagonal(pi) || cc != l.Add(pi.Sub(pa)) {
			return false
		}
	} else if !cc.Adjacent(pi) || !l.Adjacent(cc) {
		return false
	}

	if !c.place(i, l) {
		return false
	}
	if !hasPrev || cc == c.coords[prev] {
		return true
	}
	if !c.place(prev, cc) {
		return false
	}

	s := m.Dir.step()
	for j := prev + s; j >= 0 && j < len(c.coords); j += s {
		if c.coords[j].Adjacent(c.coords[j-s]) {
			break
		}
		// The residue two positions ahead was the placement before last.
		vacated := c.journal[len(c.journal)-2].from
		if !c.place(j, vacated) {
			return false
		}
	}
	return true
}
