package sim

// BuildingKind identifies a capturable special structure.
type BuildingKind uint8

const (
	BuildingWatchtower BuildingKind = iota // extends owner vision from its tile
	BuildingDepot                          // boosts owner income
)

func (k BuildingKind) String() string {
	switch k {
	case BuildingWatchtower:
		return "watchtower"
	case BuildingDepot:
		return "depot"
	default:
		return "unknown"
	}
}

// watchtowerVisionBonus is added to the base radius for owned watchtowers.
const watchtowerVisionBonus = 2

// Building is a capturable structure. Capture progress follows the same
// threshold as territory tiles but is tracked independently; ownership
// persists until the enemy completes a capture (no vacate decay).
type Building struct {
	Kind      BuildingKind
	Pos       Point
	Owner     Faction
	Capturing Faction
	Progress  int
}

// NewBuilding creates a neutral building at p.
func NewBuilding(kind BuildingKind, p Point) *Building {
	return &Building{Kind: kind, Pos: p, Owner: FactionNone, Capturing: FactionNone}
}

// advanceBuildings runs one capture tick for every building.
func (w *World) advanceBuildings() {
	for _, b := range w.buildings {
		u, occupied := w.occ[b.Pos]
		if !occupied || !u.Alive() || u.Faction == b.Owner {
			b.Progress = 0
			b.Capturing = FactionNone
			continue
		}
		if b.Capturing == u.Faction {
			b.Progress++
		} else {
			b.Capturing = u.Faction
			b.Progress = 1
		}
		if b.Progress >= captureThreshold {
			b.Owner = u.Faction
			b.Progress = 0
			b.Capturing = FactionNone
		}
	}
}

// depotCount returns how many depots faction f owns.
func (w *World) depotCount(f Faction) int {
	n := 0
	for _, b := range w.buildings {
		if b.Kind == BuildingDepot && b.Owner == f {
			n++
		}
	}
	return n
}
