package sim

import "sort"

const (
	trickleInterval  = 10 // ticks between flat income payments
	trickleAmount    = 1
	dividendInterval = 50 // ticks between territory dividends
	dividendPerTiles = 5  // owned tiles per dividend point
	depotDividend    = 2  // extra dividend per owned depot

	spawnBoxMin = -2 // spawn candidate box around the HQ origin
	spawnBoxMax = 3
)

// updateEconomy pays each faction its periodic income and attempts one spawn
// per faction per tick.
func (w *World) updateEconomy() {
	for _, fs := range w.factions {
		if w.tick%trickleInterval == 0 {
			fs.Resources += trickleAmount
		}
		if w.tick%dividendInterval == 0 {
			fs.Resources += w.territory.OwnedCount(fs.ID)/dividendPerTiles +
				depotDividend*w.depotCount(fs.ID)
		}
		w.trySpawn(fs)
	}
}

// trySpawn picks a random affordable role and places a fresh unit on a free
// tile near the faction HQ. If no tile is free the purchase rolls back; the
// resources stay banked for a later tick.
func (w *World) trySpawn(fs *FactionState) {
	affordable := w.affordableRoles(fs.Resources)
	if len(affordable) == 0 {
		return
	}
	role := affordable[w.rng.Intn(len(affordable))]

	pos, ok := w.spawnTile(fs)
	if !ok {
		return
	}
	fs.Resources -= w.roles[role].Cost
	w.placeUnit(fs.ID, role, pos)
}

// affordableRoles returns every role costing at most budget, in stable
// ascending role order so the rng draw is reproducible.
func (w *World) affordableRoles(budget int) []Role {
	var out []Role
	for role, stats := range w.roles {
		if stats.Cost <= budget {
			out = append(out, role)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// spawnTile scans the candidate box around the HQ origin in row-major order
// and returns the first walkable, unoccupied tile outside the HQ footprint.
func (w *World) spawnTile(fs *FactionState) (Point, bool) {
	origin := fs.HQ.Origin
	for dy := spawnBoxMin; dy <= spawnBoxMax; dy++ {
		for dx := spawnBoxMin; dx <= spawnBoxMax; dx++ {
			p := Point{origin.X + dx, origin.Y + dy}
			if !w.grid.Walkable(p) || w.tileBlocked(p) || fs.HQ.Contains(p) {
				continue
			}
			return p, true
		}
	}
	return Point{}, false
}

// tileBlocked reports whether any faction's HQ or a living unit occupies p.
func (w *World) tileBlocked(p Point) bool {
	if u, ok := w.occ[p]; ok && u.Alive() {
		return true
	}
	for _, fs := range w.factions {
		if fs.HQ.Contains(p) {
			return true
		}
	}
	return false
}

// placeUnit constructs a unit of the given role at p and registers it.
func (w *World) placeUnit(f Faction, role Role, p Point) *Unit {
	stats := w.roles[role]
	u := &Unit{
		ID:        w.nextID,
		Faction:   f,
		Role:      role,
		Pos:       p,
		Health:    stats.Health,
		MaxHealth: stats.Health,
		Damage:    stats.Damage,
		Speed:     stats.Speed,
		Morale:    moraleStart,
		Supplied:  true,
	}
	w.nextID++
	w.units = append(w.units, u)
	w.byID[u.ID] = u
	w.occ[p] = u
	w.emit(EventSpawn, u)
	return u
}

// cheapestCost returns the lowest spawn cost in the role table.
func (w *World) cheapestCost() int {
	cheapest := -1
	for _, stats := range w.roles {
		if cheapest < 0 || stats.Cost < cheapest {
			cheapest = stats.Cost
		}
	}
	return cheapest
}
