package sim

import "math/rand"

// Default battlefield dimensions.
const (
	defaultCols = 40
	defaultRows = 30
)

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optInfra optionKind = iota // grid, seed, weather, sink, roles — applied first
	optUnit                    // place units and buildings — applied after HQs exist
)

// Option is a builder function applied to a World during construction.
type Option struct {
	kind optionKind
	fn   func(*World)
}

// WithSize sets the grid dimensions. Ignored when WithGrid is also given.
func WithSize(cols, rows int) Option {
	return Option{optInfra, func(w *World) {
		if w.grid == nil {
			w.grid = NewGrid(cols, rows)
		}
	}}
}

// WithGrid installs a pre-built terrain grid.
func WithGrid(g *Grid) Option {
	return Option{optInfra, func(w *World) {
		w.grid = g
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) Option {
	return Option{optInfra, func(w *World) {
		w.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation rng
	}}
}

// WithWeather sets the starting weather condition.
func WithWeather(c Weather) Option {
	return Option{optInfra, func(w *World) {
		w.weather = c
	}}
}

// WithSink attaches an event sink.
func WithSink(s EventSink) Option {
	return Option{optInfra, func(w *World) {
		w.sink = s
	}}
}

// WithRoles replaces the default role stat table.
func WithRoles(t RoleTable) Option {
	return Option{optInfra, func(w *World) {
		w.roles = t
	}}
}

// WithResources sets a faction's starting resource balance.
func WithResources(f Faction, amount int) Option {
	return Option{optInfra, func(w *World) {
		w.startingRes[f] = amount
	}}
}

// WithHQ overrides the HQ origin for faction f.
func WithHQ(f Faction, origin Point) Option {
	return Option{optInfra, func(w *World) {
		w.hqOrigins[f] = &origin
	}}
}

// WithUnit places a unit of the given role at p during construction.
func WithUnit(f Faction, role Role, p Point) Option {
	return Option{optUnit, func(w *World) {
		w.placeUnit(f, role, p)
	}}
}

// WithBuilding places a neutral capturable building at p.
func WithBuilding(kind BuildingKind, p Point) Option {
	return Option{optUnit, func(w *World) {
		w.buildings = append(w.buildings, NewBuilding(kind, p))
	}}
}

// NewWorld builds a ready-to-tick world. Options apply in two passes: infra
// options first (grid, seed, tables), then unit placement once the HQs and
// territory exist. Defaults: an open defaultCols x defaultRows grid, HQs at
// mid-height on the left and right edges, seed 1, clear weather.
func NewWorld(opts ...Option) *World {
	w := &World{
		byID:        make(map[int]*Unit),
		occ:         make(map[Point]*Unit),
		weather:     WeatherClear,
		roles:       DefaultRoles(),
		winner:      FactionNone,
		startingRes: [factionCount]int{},
		hqOrigins:   [factionCount]*Point{},
	}
	for _, o := range opts {
		if o.kind == optInfra {
			o.fn(w)
		}
	}
	if w.grid == nil {
		w.grid = NewGrid(defaultCols, defaultRows)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(1)) // #nosec G404 -- simulation rng
	}

	mid := w.grid.Rows()/2 - 1
	origins := [factionCount]Point{
		FactionRed:  {1, mid},
		FactionBlue: {w.grid.Cols() - 1 - hqFootprint, mid},
	}
	for f := Faction(0); int(f) < factionCount; f++ {
		if o := w.hqOrigins[f]; o != nil {
			origins[f] = *o
		}
		w.factions[f] = &FactionState{
			ID:        f,
			HQ:        NewHQ(f, origins[f], hqMaxHealth),
			Resources: w.startingRes[f],
		}
	}
	w.territory = NewTerritory(w.grid.Cols(), w.grid.Rows(),
		w.factions[FactionRed].HQ, w.factions[FactionBlue].HQ)

	for _, o := range opts {
		if o.kind == optUnit {
			o.fn(w)
		}
	}
	w.vis = w.computeVisibility()
	return w
}

// Run advances the world until the game ends or maxTicks elapse, and returns
// the winner (FactionNone on timeout).
func (w *World) Run(maxTicks int) Faction {
	for i := 0; i < maxTicks; i++ {
		w.AdvanceTick()
		if winner, over := w.GameOver(); over {
			return winner
		}
	}
	return FactionNone
}
