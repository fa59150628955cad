// Battlefield generation using simplex noise, with a connectivity guarantee
// between the two HQ sites.
package terrain

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/PaulDouglasAGI/war/internal/sim"
)

// GenConfig holds battlefield generation parameters.
type GenConfig struct {
	Cols       int
	Rows       int
	Seed       int64
	NoiseScale float64 // sampling frequency; smaller = broader features
	WallLvl    float64 // noise threshold above which a tile is wall
	ForestLvl  float64 // noise threshold above which a tile is forest
}

// DefaultGenConfig returns the standard battlefield parameters.
func DefaultGenConfig(cols, rows int, seed int64) GenConfig {
	return GenConfig{
		Cols:       cols,
		Rows:       rows,
		Seed:       seed,
		NoiseScale: 0.13,
		WallLvl:    0.78,
		ForestLvl:  0.62,
	}
}

// maxAttempts bounds the regenerate-until-connected loop.
const maxAttempts = 20

// clearRadius is the Manhattan radius carved to open ground around each HQ
// anchor so spawning always has room.
const clearRadius = 4

// Generate builds a grid from layered noise and verifies the two HQ anchors
// are mutually reachable over walkable tiles. Disconnected rolls are retried
// with a perturbed seed; an error after maxAttempts means the thresholds are
// badly tuned, not bad luck.
func Generate(cfg GenConfig, anchors [2]sim.Point) (*sim.Grid, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		g := roll(cfg, cfg.Seed+int64(attempt))
		carve(g, anchors)
		if connected(g, anchors[0], anchors[1]) {
			return g, nil
		}
	}
	return nil, fmt.Errorf("terrain: no connected map in %d attempts (cols=%d rows=%d wall=%.2f)",
		maxAttempts, cfg.Cols, cfg.Rows, cfg.WallLvl)
}

// roll samples one noise layer into a terrain grid.
func roll(cfg GenConfig, seed int64) *sim.Grid {
	noise := opensimplex.NewNormalized(seed)
	g := sim.NewGrid(cfg.Cols, cfg.Rows)
	for y := 0; y < cfg.Rows; y++ {
		for x := 0; x < cfg.Cols; x++ {
			v := noise.Eval2(float64(x)*cfg.NoiseScale, float64(y)*cfg.NoiseScale)
			switch {
			case v >= cfg.WallLvl:
				g.SetKind(sim.Point{X: x, Y: y}, sim.KindWall)
			case v >= cfg.ForestLvl:
				g.SetKind(sim.Point{X: x, Y: y}, sim.KindForest)
			}
		}
	}
	return g
}

// carve forces open ground around each HQ anchor.
func carve(g *sim.Grid, anchors [2]sim.Point) {
	for _, a := range anchors {
		for dy := -clearRadius; dy <= clearRadius; dy++ {
			for dx := -clearRadius; dx <= clearRadius; dx++ {
				p := sim.Point{X: a.X + dx, Y: a.Y + dy}
				if g.InBounds(p) && a.Manhattan(p) <= clearRadius {
					g.SetKind(p, sim.KindOpen)
				}
			}
		}
	}
}

// connected reports whether b is reachable from a over walkable tiles.
func connected(g *sim.Grid, a, b sim.Point) bool {
	if !g.Walkable(a) || !g.Walkable(b) {
		return false
	}
	seen := map[sim.Point]bool{a: true}
	queue := []sim.Point{a}
	var buf [4]sim.Point
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b {
			return true
		}
		for _, n := range g.Neighbors4(cur, buf[:0]) {
			if !seen[n] && g.Walkable(n) {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

// HQAnchors returns the standard HQ origins for a grid of the given size:
// mid-height, inset one tile from the left and right edges.
func HQAnchors(cols, rows int) [2]sim.Point {
	mid := rows/2 - 1
	return [2]sim.Point{
		{X: 1, Y: mid},
		{X: cols - 3, Y: mid},
	}
}
