package sim

// NextStep resolves the first tile of a shortest path from `from` to any tile
// in `goals` using breadth-first search over walkable terrain.
//
// Occupancy is only enforced on the immediate first step: a tile in `occupied`
// (holding a unit other than selfID) is skipped when expanding `from`, but
// interior path tiles are not re-checked. Occupancy is re-evaluated every tick
// anyway, so full re-planning against a moving crowd buys nothing; units that
// path "through" a crowd simply stall on the next tick. This approximation is
// intentional; do not tighten it.
//
// Returns (step, false) when `from` is already a goal (no movement needed).
// Returns (`from`, true) when no path exists; callers treat a step equal to
// the current position as a stall.
//
// BFS expands neighbors in the fixed +x, -x, +y, -y order, so results are
// deterministic for identical input state.
func (g *Grid) NextStep(from Point, goals map[Point]bool, occupied map[Point]int, selfID int) (Point, bool) {
	if goals[from] {
		return Point{}, false
	}

	came := map[Point]Point{from: from}
	queue := []Point{from}
	var buf [4]Point

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if goals[cur] {
			// Walk back until the tile whose predecessor is the start.
			for came[cur] != from {
				cur = came[cur]
			}
			return cur, true
		}

		for _, n := range g.Neighbors4(cur, buf[:0]) {
			if _, seen := came[n]; seen {
				continue
			}
			if !g.Walkable(n) {
				continue
			}
			if cur == from {
				if id, occ := occupied[n]; occ && id != selfID {
					continue
				}
			}
			came[n] = cur
			queue = append(queue, n)
		}
	}

	// No path: report the current position so the caller stalls in place.
	return from, true
}
