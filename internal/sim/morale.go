package sim

// --- Morale constants ---

const (
	moraleMax        = 100
	moraleStart      = 70 // spawn morale
	moraleAllyWeight = 1  // gain per adjacent ally per tick
	moraleFoeWeight  = 2  // loss per adjacent enemy per tick

	moraleRetreatBelow = 20 // below this, forced retreat away from enemy HQ
	moraleWaverBelow   = 40 // below this, 50% chance to skip the move

	moraleAllyDeathShock = 10 // allies at Manhattan distance exactly 1
	moraleCommanderShock = 20 // whole roster when a commander falls

	// Unsupplied units bleed health on a fixed cadence.
	attritionInterval = 10
	attritionDamage   = 1
)

// updateMoraleAndSupply runs the post-territory morale/supply phase: supply
// reachability first (morale gain is gated on it), then the density-driven
// morale delta, then attrition for cut-off units.
func (w *World) updateMoraleAndSupply() {
	var supplied [factionCount]map[Point]bool
	for _, fs := range w.factions {
		supplied[fs.ID] = w.suppliedSet(fs.ID)
	}

	attrition := w.tick%attritionInterval == 0
	var buf [4]Point

	for _, u := range w.units {
		if !u.Alive() {
			continue
		}
		u.Supplied = supplied[u.Faction][u.Pos]

		allies, enemies := 0, 0
		for _, n := range w.grid.Neighbors4(u.Pos, buf[:0]) {
			o, ok := w.occ[n]
			if !ok || !o.Alive() {
				continue
			}
			if o.Faction == u.Faction {
				allies++
			} else {
				enemies++
			}
		}
		delta := moraleAllyWeight*allies - moraleFoeWeight*enemies
		if !u.Supplied && delta > 0 {
			delta = 0
		}
		u.Morale = clampMorale(u.Morale + delta)

		if attrition && !u.Supplied {
			u.Health -= attritionDamage
			if u.Health <= 0 {
				w.killUnit(u, nil)
			}
		}
	}
}

// suppliedSet returns the tiles reachable from faction f's HQ via tiles owned
// by f or currently occupied by an f unit. Breadth-first with the fixed
// neighbor order; output is a membership set, so order does not leak.
func (w *World) suppliedSet(f Faction) map[Point]bool {
	hq := w.factions[f].HQ
	seen := make(map[Point]bool)
	queue := hq.Tiles()
	for _, p := range queue {
		seen[p] = true
	}

	var buf [4]Point
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range w.grid.Neighbors4(cur, buf[:0]) {
			if seen[n] {
				continue
			}
			if !w.traversableForSupply(n, f) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}

// traversableForSupply reports whether a supply line may cross tile p.
func (w *World) traversableForSupply(p Point, f Faction) bool {
	if w.territory.OwnerAt(p) == f {
		return true
	}
	if u, ok := w.occ[p]; ok && u.Alive() && u.Faction == f {
		return true
	}
	return false
}

// shockNearbyAllies applies the death shock to same-faction units at
// Manhattan distance exactly 1 from the fallen unit, and the roster-wide
// commander shock when the victim led the faction.
func (w *World) shockNearbyAllies(victim *Unit) {
	for _, u := range w.units {
		if !u.Alive() || u.Faction != victim.Faction || u == victim {
			continue
		}
		if u.Pos.Manhattan(victim.Pos) == 1 {
			u.Morale = clampMorale(u.Morale - moraleAllyDeathShock)
		}
		if victim.Role == RoleCommander {
			u.Morale = clampMorale(u.Morale - moraleCommanderShock)
		}
	}
}

func clampMorale(m int) int {
	if m < 0 {
		return 0
	}
	if m > moraleMax {
		return moraleMax
	}
	return m
}
