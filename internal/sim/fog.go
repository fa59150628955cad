package sim

// baseVisionRadius is the default Manhattan vision radius of a unit or HQ.
const baseVisionRadius = 5

// Visibility holds the per-faction visible tile sets for one tick.
// It is recomputed in full every tick: entity counts are small enough that
// correctness beats incrementality.
type Visibility struct {
	tiles [factionCount]map[Point]bool
}

// Sees returns true if faction f can currently see tile p.
func (v *Visibility) Sees(f Faction, p Point) bool {
	if v == nil || f < 0 || int(f) >= factionCount {
		return false
	}
	return v.tiles[f][p]
}

// VisibleCount returns the number of tiles faction f can see.
func (v *Visibility) VisibleCount(f Faction) int {
	if v == nil || f < 0 || int(f) >= factionCount {
		return 0
	}
	return len(v.tiles[f])
}

// computeVisibility builds the per-faction visible sets from every friendly
// unit, the HQ footprint, and owned watchtowers. Vision radius per source is
// the base radius plus the role bonus, minus the weather penalty, floored at
// minVisionRadius.
func (w *World) computeVisibility() *Visibility {
	v := &Visibility{}
	for f := 0; f < factionCount; f++ {
		v.tiles[f] = make(map[Point]bool)
	}

	penalty := w.weather.visionPenalty()
	radius := func(bonus int) int {
		r := baseVisionRadius + bonus - penalty
		if r < minVisionRadius {
			r = minVisionRadius
		}
		return r
	}

	for _, u := range w.units {
		if !u.Alive() {
			continue
		}
		w.addDisc(v.tiles[u.Faction], u.Pos, radius(roleVisionBonus(u.Role)))
	}
	for _, fs := range w.factions {
		for _, t := range fs.HQ.Tiles() {
			w.addDisc(v.tiles[fs.ID], t, radius(0))
		}
	}
	for _, b := range w.buildings {
		if b.Kind == BuildingWatchtower && b.Owner != FactionNone {
			w.addDisc(v.tiles[b.Owner], b.Pos, radius(watchtowerVisionBonus))
		}
	}
	return v
}

// addDisc marks all in-bounds tiles within Manhattan distance r of origin.
func (w *World) addDisc(set map[Point]bool, origin Point, r int) {
	for x := origin.X - r; x <= origin.X+r; x++ {
		for y := origin.Y - r; y <= origin.Y+r; y++ {
			p := Point{x, y}
			if w.grid.InBounds(p) && origin.Manhattan(p) <= r {
				set[p] = true
			}
		}
	}
}
