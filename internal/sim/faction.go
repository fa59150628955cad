package sim

// Faction identifies one of the two opposing sides. FactionNone marks
// unowned territory and neutral buildings.
type Faction int8

const (
	FactionNone Faction = iota - 1
	FactionRed
	FactionBlue
	factionCount = 2
)

func (f Faction) String() string {
	switch f {
	case FactionRed:
		return "red"
	case FactionBlue:
		return "blue"
	case FactionNone:
		return "none"
	default:
		return "unknown"
	}
}

// Enemy returns the opposing faction.
func (f Faction) Enemy() Faction {
	if f == FactionRed {
		return FactionBlue
	}
	return FactionRed
}

// hqFootprint is the square footprint side length of a headquarters.
const hqFootprint = 2

// hqMaxHealth is the default headquarters health pool.
const hqMaxHealth = 500

// HQ is a faction's headquarters: a fixed 2x2 footprint with health.
// Its tiles are permanently owned by the faction and never change hands.
type HQ struct {
	Faction   Faction
	Origin    Point // top-left corner of the footprint
	Health    int
	MaxHealth int
}

// NewHQ creates a headquarters at the given top-left corner.
func NewHQ(f Faction, origin Point, maxHealth int) *HQ {
	return &HQ{Faction: f, Origin: origin, Health: maxHealth, MaxHealth: maxHealth}
}

// Tiles returns the footprint tiles in row-major order.
func (h *HQ) Tiles() []Point {
	out := make([]Point, 0, hqFootprint*hqFootprint)
	for dy := 0; dy < hqFootprint; dy++ {
		for dx := 0; dx < hqFootprint; dx++ {
			out = append(out, Point{h.Origin.X + dx, h.Origin.Y + dy})
		}
	}
	return out
}

// Contains returns true if p is one of the footprint tiles.
func (h *HQ) Contains(p Point) bool {
	return p.X >= h.Origin.X && p.X < h.Origin.X+hqFootprint &&
		p.Y >= h.Origin.Y && p.Y < h.Origin.Y+hqFootprint
}

// Center returns the footprint's reference tile used for direction math
// (retreat headings, spawn anchoring).
func (h *HQ) Center() Point {
	return Point{h.Origin.X, h.Origin.Y}
}

// Destroyed returns true once the HQ has fallen.
func (h *HQ) Destroyed() bool {
	return h.Health <= 0
}

// FactionState carries all faction-wide mutable state. It is an explicit
// record passed through the tick phases rather than ambient globals, so
// parallel what-if worlds never share counters.
type FactionState struct {
	ID        Faction
	HQ        *HQ
	Resources int
	Kills     int
}
