package sim

// Point is a tile coordinate on the battle grid.
type Point struct {
	X int
	Y int
}

// Manhattan returns the Manhattan distance between two points.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Kind identifies the terrain of a tile.
type Kind uint8

const (
	KindOpen   Kind = iota // default passable ground
	KindForest             // passable, imposes one idle tick on entry
	KindWall               // impassable
	kindCount              // sentinel
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindForest:
		return "forest"
	case KindWall:
		return "wall"
	default:
		return "unknown"
	}
}

// kindWalkable returns true if units may stand on the kind.
func kindWalkable(k Kind) bool {
	return k != KindWall
}

// kindEntryDelay returns the idle ticks imposed after stepping onto the kind.
func kindEntryDelay(k Kind) int {
	if k == KindForest {
		return 1
	}
	return 0
}

// neighborOffsets is the fixed 4-neighbor visit order: +x, -x, +y, -y.
// Pathfinding and supply traversal depend on this order for determinism.
var neighborOffsets = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Grid is the per-tile terrain map. It is immutable between terrain-altering
// events; the only mutation is PlaceWall (engineer ability), never reversed.
type Grid struct {
	cols  int
	rows  int
	kinds []Kind // row-major: index = y*cols + x
}

// NewGrid creates a grid of the given size with all-open terrain.
func NewGrid(cols, rows int) *Grid {
	return &Grid{cols: cols, rows: rows, kinds: make([]Kind, cols*rows)}
}

// Cols returns the grid width in tiles.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in tiles.
func (g *Grid) Rows() int { return g.rows }

// InBounds returns true if p lies within the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// KindAt returns the terrain kind at p. Out-of-bounds reads as wall.
func (g *Grid) KindAt(p Point) Kind {
	if !g.InBounds(p) {
		return KindWall
	}
	return g.kinds[p.Y*g.cols+p.X]
}

// Walkable returns true if a unit may stand on p.
func (g *Grid) Walkable(p Point) bool {
	return g.InBounds(p) && kindWalkable(g.kinds[p.Y*g.cols+p.X])
}

// Neighbors4 appends the in-bounds 4-neighbors of p to buf in the fixed
// +x, -x, +y, -y order and returns the extended slice.
func (g *Grid) Neighbors4(p Point, buf []Point) []Point {
	for _, d := range neighborOffsets {
		n := Point{p.X + d.X, p.Y + d.Y}
		if g.InBounds(n) {
			buf = append(buf, n)
		}
	}
	return buf
}

// SetKind overwrites the terrain at p. Intended for construction; the tick
// loop itself only mutates terrain through PlaceWall.
func (g *Grid) SetKind(p Point, k Kind) {
	if g.InBounds(p) {
		g.kinds[p.Y*g.cols+p.X] = k
	}
}

// PlaceWall converts an open tile to wall. Returns false if the tile is not
// open ground (walls never overwrite forest or other walls).
func (g *Grid) PlaceWall(p Point) bool {
	if !g.InBounds(p) || g.kinds[p.Y*g.cols+p.X] != KindOpen {
		return false
	}
	g.kinds[p.Y*g.cols+p.X] = KindWall
	return true
}
