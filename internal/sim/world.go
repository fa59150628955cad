package sim

import "math/rand"

// Unit decision thresholds.
const (
	regroupRosterBelow  = 3 // regroup when fewer allies than this remain
	regroupAllyDistance = 4 // and the nearest ally is farther than this
	advanceRosterMin    = 5 // push the enemy HQ once the roster reaches this
)

// World is the complete simulation state. All mutation happens through
// AdvanceTick on a single goroutine; the struct carries its own rng so two
// worlds built with the same seed and options replay identically.
type World struct {
	grid      *Grid
	territory *Territory
	factions  [factionCount]*FactionState
	units     []*Unit
	byID      map[int]*Unit
	occ       map[Point]*Unit
	buildings []*Building
	vis       *Visibility
	weather   Weather
	tick      int
	nextID    int
	rng       *rand.Rand
	sink      EventSink
	roles     RoleTable
	winner    Faction
	over      bool

	// construction-time overrides, consumed by NewWorld
	startingRes [factionCount]int
	hqOrigins   [factionCount]*Point
}

// Tick returns the number of completed ticks.
func (w *World) Tick() int { return w.tick }

// Grid returns the terrain grid.
func (w *World) Grid() *Grid { return w.grid }

// Territory returns the tile-ownership tracker.
func (w *World) Territory() *Territory { return w.territory }

// Faction returns the mutable state record for faction f.
func (w *World) Faction(f Faction) *FactionState { return w.factions[f] }

// Visibility returns the visibility computed on the most recent tick, or nil
// before the first tick.
func (w *World) Visibility() *Visibility { return w.vis }

// CurrentWeather returns the active weather condition.
func (w *World) CurrentWeather() Weather { return w.weather }

// Buildings returns the capturable structures on the map.
func (w *World) Buildings() []*Building { return w.buildings }

// Units returns the living roster in stable spawn order.
func (w *World) Units() []*Unit { return w.units }

// UnitByID returns the living unit with the given id, or nil.
func (w *World) UnitByID(id int) *Unit { return w.byID[id] }

// RosterCount returns the number of living units for faction f.
func (w *World) RosterCount(f Faction) int {
	n := 0
	for _, u := range w.units {
		if u.Alive() && u.Faction == f {
			n++
		}
	}
	return n
}

// GameOver reports whether the battle has been decided, and the winner.
func (w *World) GameOver() (Faction, bool) {
	if !w.over {
		return FactionNone, false
	}
	return w.winner, true
}

// AdvanceTick runs one full simulation step. Phase order is fixed:
// economy, visibility, unit updates, removal sweep, territory, buildings,
// morale and supply, weather, win check. Calling it after the game is over
// is a no-op.
func (w *World) AdvanceTick() {
	if w.over {
		return
	}
	w.tick++

	w.updateEconomy()
	w.vis = w.computeVisibility()

	for _, u := range w.units {
		u.ShieldReduction = 0
	}
	for _, u := range w.units {
		if u.Alive() {
			w.updateUnit(u)
		}
	}
	w.sweepRemovals()

	w.territory.Advance(w.occ)
	w.advanceBuildings()
	w.updateMoraleAndSupply()
	w.sweepRemovals()

	w.updateWeather()
	w.checkGameOver()
}

// updateUnit runs one unit's turn: cooldown bookkeeping, movement, one combat
// attempt, then the role ability. Combat fires every tick regardless of
// movement state; a unit pinned by cooldown still swings.
func (w *World) updateUnit(u *Unit) {
	if u.AttackCooldown > 0 {
		u.AttackCooldown--
	}

	switch {
	case u.SlowTicks > 0:
		u.SlowTicks--
	case u.MoveCooldown > 0:
		u.MoveCooldown--
	case u.Morale < moraleRetreatBelow:
		w.retreatStep(u)
	case u.Morale < moraleWaverBelow && w.rng.Intn(2) == 0:
		// Shaken units hesitate half the time.
	default:
		w.moveTowardGoal(u)
	}

	w.attemptCombat(u)
	w.runAbility(u)
}

// moveTowardGoal picks the unit's current objective and walks up to Speed
// steps along the shortest path. Terrain entry delays accumulated along the
// way (forest) do not cut the move short; they idle the unit on the
// following ticks.
func (w *World) moveTowardGoal(u *Unit) {
	goals := w.selectGoals(u)
	if len(goals) == 0 {
		return
	}
	moved := false
	for step := 0; step < u.Speed; step++ {
		next, ok := w.grid.NextStep(u.Pos, goals, w.occupiedIDs(), u.ID)
		if !ok || next == u.Pos {
			break
		}
		w.stepTo(u, next)
		moved = true
	}
	if moved {
		w.resetMoveCooldown(u)
		w.emit(EventMove, u)
	}
}

// selectGoals returns the unit's goal tile set by descending priority:
//
//  1. close with a visible enemy within the engagement radius
//  2. regroup with the nearest ally when the roster has collapsed
//  3. assault the enemy HQ once the roster is strong enough
//  4. hold ground near the home HQ
func (w *World) selectGoals(u *Unit) map[Point]bool {
	if enemy := w.nearestVisibleEnemy(u); enemy != nil {
		return w.adjacentWalkable(enemy.Pos)
	}

	roster := w.RosterCount(u.Faction)
	if roster < regroupRosterBelow {
		if ally := w.nearestAlly(u); ally != nil && u.Pos.Manhattan(ally.Pos) > regroupAllyDistance {
			return w.adjacentWalkable(ally.Pos)
		}
	}
	if roster >= advanceRosterMin {
		return w.hqAssaultTiles(u.Faction.Enemy())
	}
	return w.holdTiles(u.Faction)
}

// nearestVisibleEnemy returns the closest living enemy that u's faction can
// currently see within the engagement radius. Ties break toward the earlier
// roster entry.
func (w *World) nearestVisibleEnemy(u *Unit) *Unit {
	var best *Unit
	bestDist := engagementRadius + 1
	for _, o := range w.units {
		if !o.Alive() || o.Faction == u.Faction {
			continue
		}
		if !w.vis.Sees(u.Faction, o.Pos) {
			continue
		}
		if d := u.Pos.Manhattan(o.Pos); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

// nearestAlly returns the closest other living unit of u's faction.
func (w *World) nearestAlly(u *Unit) *Unit {
	var best *Unit
	bestDist := 0
	for _, o := range w.units {
		if !o.Alive() || o.Faction != u.Faction || o == u {
			continue
		}
		if d := u.Pos.Manhattan(o.Pos); best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

// adjacentWalkable returns the walkable 4-neighbors of p as a goal set.
func (w *World) adjacentWalkable(p Point) map[Point]bool {
	goals := make(map[Point]bool, 4)
	var buf [4]Point
	for _, n := range w.grid.Neighbors4(p, buf[:0]) {
		goals[n] = true
	}
	return goals
}

// hqAssaultTiles returns faction f's HQ footprint tiles as a goal set; siege
// damage requires standing on the footprint itself, so that is where an
// assault must end up.
func (w *World) hqAssaultTiles(f Faction) map[Point]bool {
	goals := make(map[Point]bool, hqFootprint*hqFootprint)
	for _, t := range w.factions[f].HQ.Tiles() {
		if w.grid.Walkable(t) {
			goals[t] = true
		}
	}
	return goals
}

// holdRadius is how far from the home HQ a holding unit is allowed to sit.
const holdRadius = 5

// holdTiles returns the walkable tiles within holdRadius of faction f's HQ,
// excluding the footprint itself. A unit already inside the ring stays put.
func (w *World) holdTiles(f Faction) map[Point]bool {
	hq := w.factions[f].HQ
	c := hq.Center()
	goals := make(map[Point]bool)
	for y := c.Y - holdRadius; y <= c.Y+holdRadius; y++ {
		for x := c.X - holdRadius; x <= c.X+holdRadius; x++ {
			p := Point{x, y}
			if c.Manhattan(p) > holdRadius || !w.grid.Walkable(p) || hq.Contains(p) {
				continue
			}
			goals[p] = true
		}
	}
	return goals
}

// retreatStep moves u one tile strictly away from the enemy HQ, taking the
// first free neighbor in the fixed order that increases the distance.
func (w *World) retreatStep(u *Unit) {
	from := w.factions[u.Faction.Enemy()].HQ.Center()
	cur := u.Pos.Manhattan(from)
	var buf [4]Point
	for _, n := range w.grid.Neighbors4(u.Pos, buf[:0]) {
		if n.Manhattan(from) <= cur || !w.grid.Walkable(n) {
			continue
		}
		if o, ok := w.occ[n]; ok && o.Alive() {
			continue
		}
		w.stepTo(u, n)
		w.resetMoveCooldown(u)
		w.emit(EventMove, u)
		return
	}
}

// stepTo moves u onto tile next, maintaining the occupancy index and applying
// the terrain entry delay.
func (w *World) stepTo(u *Unit, next Point) {
	if cur, ok := w.occ[u.Pos]; ok && cur == u {
		delete(w.occ, u.Pos)
	}
	u.Pos = next
	w.occ[next] = u
	u.SlowTicks += kindEntryDelay(w.grid.KindAt(next))
}

// resetMoveCooldown re-arms the move cooldown, scaled by weather.
func (w *World) resetMoveCooldown(u *Unit) {
	cd := moveCooldownMin + w.rng.Intn(moveCooldownMax-moveCooldownMin+1)
	u.MoveCooldown = int(float64(cd) * w.weather.moveCooldownMul())
}

// occupiedIDs snapshots the occupancy index in the id form the pathfinder
// consumes.
func (w *World) occupiedIDs() map[Point]int {
	out := make(map[Point]int, len(w.occ))
	for p, u := range w.occ {
		if u.Alive() {
			out[p] = u.ID
		}
	}
	return out
}

// checkGameOver decides the battle. A faction loses when its HQ is destroyed,
// or when it has no living units and cannot afford its cheapest spawn.
func (w *World) checkGameOver() {
	for _, fs := range w.factions {
		enemy := fs.ID.Enemy()
		if fs.HQ.Destroyed() {
			w.declareWinner(enemy)
			return
		}
		if w.RosterCount(fs.ID) == 0 && fs.Resources < w.cheapestCost() {
			w.declareWinner(enemy)
			return
		}
	}
}

func (w *World) declareWinner(f Faction) {
	w.winner = f
	w.over = true
}
