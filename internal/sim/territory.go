package sim

// Capture/vacate thresholds in ticks. Capture is deliberately faster than
// decay, biasing tiles toward the force currently present.
const (
	captureThreshold = 30
	vacateThreshold  = 100
)

// tileClaim is the per-tile ownership state machine:
// Neutral -> Contested(faction, progress) -> Owned(faction), with owned tiles
// decaying back to neutral after vacateThreshold unoccupied ticks.
type tileClaim struct {
	Owner     Faction
	Capturing Faction
	Progress  int
	Vacant    int // ticks since last friendly presence on an owned tile
}

// Territory tracks tile ownership for the whole grid. HQ footprint tiles are
// permanently owned by their faction and excluded from the automaton.
type Territory struct {
	cols   int
	rows   int
	claims []tileClaim
	hq     map[Point]Faction
}

// NewTerritory creates an all-neutral territory map with the HQ footprints
// pinned to their factions.
func NewTerritory(cols, rows int, hqs ...*HQ) *Territory {
	t := &Territory{
		cols:   cols,
		rows:   rows,
		claims: make([]tileClaim, cols*rows),
		hq:     make(map[Point]Faction),
	}
	for i := range t.claims {
		t.claims[i].Owner = FactionNone
		t.claims[i].Capturing = FactionNone
	}
	for _, h := range hqs {
		for _, p := range h.Tiles() {
			t.hq[p] = h.Faction
		}
	}
	return t
}

// OwnerAt returns the faction owning tile p, or FactionNone.
func (t *Territory) OwnerAt(p Point) Faction {
	if f, ok := t.hq[p]; ok {
		return f
	}
	if p.X < 0 || p.X >= t.cols || p.Y < 0 || p.Y >= t.rows {
		return FactionNone
	}
	return t.claims[p.Y*t.cols+p.X].Owner
}

// OwnedCount returns the number of non-HQ tiles owned by faction f.
func (t *Territory) OwnedCount(f Faction) int {
	n := 0
	for i := range t.claims {
		if t.claims[i].Owner == f {
			n++
		}
	}
	return n
}

// Advance runs one tick of the capture/vacate automaton. occupant maps tile
// to the unit standing on it; mixed-faction occupancy of a single tile cannot
// occur because combat resolves same-tile contact before this phase runs.
func (t *Territory) Advance(occupant map[Point]*Unit) {
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			p := Point{x, y}
			if _, isHQ := t.hq[p]; isHQ {
				continue
			}
			c := &t.claims[y*t.cols+x]

			u, occupied := occupant[p]
			if occupied && u.Alive() {
				c.Vacant = 0
				if c.Capturing == u.Faction {
					c.Progress++
				} else {
					c.Capturing = u.Faction
					c.Progress = 1
				}
				if c.Progress >= captureThreshold {
					c.Owner = u.Faction
				}
				continue
			}

			c.Progress = 0
			c.Capturing = FactionNone
			if c.Owner != FactionNone {
				c.Vacant++
				if c.Vacant >= vacateThreshold {
					c.Owner = FactionNone
					c.Vacant = 0
				}
			}
		}
	}
}
