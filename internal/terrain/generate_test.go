package terrain

import (
	"testing"

	"github.com/PaulDouglasAGI/war/internal/sim"
)

func TestGenerate_AnchorsConnected(t *testing.T) {
	anchors := HQAnchors(40, 30)
	g, err := Generate(DefaultGenConfig(40, 30, 99), anchors)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if g.Cols() != 40 || g.Rows() != 30 {
		t.Fatalf("grid is %dx%d, want 40x30", g.Cols(), g.Rows())
	}
	if !connected(g, anchors[0], anchors[1]) {
		t.Fatal("returned grid must connect the two HQ anchors")
	}
}

func TestGenerate_CarvesAroundAnchors(t *testing.T) {
	anchors := HQAnchors(40, 30)
	g, err := Generate(DefaultGenConfig(40, 30, 7), anchors)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, a := range anchors {
		for dy := -clearRadius; dy <= clearRadius; dy++ {
			for dx := -clearRadius; dx <= clearRadius; dx++ {
				p := sim.Point{X: a.X + dx, Y: a.Y + dy}
				if !g.InBounds(p) || a.Manhattan(p) > clearRadius {
					continue
				}
				if g.KindAt(p) != sim.KindOpen {
					t.Fatalf("tile %v near anchor %v is %v, want open", p, a, g.KindAt(p))
				}
			}
		}
	}
}

func TestGenerate_DeterministicPerSeed(t *testing.T) {
	anchors := HQAnchors(40, 30)
	cfg := DefaultGenConfig(40, 30, 1234)
	g1, err1 := Generate(cfg, anchors)
	g2, err2 := Generate(cfg, anchors)
	if err1 != nil || err2 != nil {
		t.Fatalf("Generate: %v / %v", err1, err2)
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			p := sim.Point{X: x, Y: y}
			if g1.KindAt(p) != g2.KindAt(p) {
				t.Fatalf("tile %v differs across identical seeds", p)
			}
		}
	}
}

func TestGenerate_ImpossibleThresholdsFail(t *testing.T) {
	// Wall threshold of zero turns every tile to wall; carving opens the
	// anchor neighborhoods but the corridor between them can never form.
	cfg := DefaultGenConfig(60, 40, 1)
	cfg.WallLvl = 0
	cfg.ForestLvl = 0
	if _, err := Generate(cfg, HQAnchors(60, 40)); err == nil {
		t.Fatal("an all-wall parameterization should exhaust its attempts")
	}
}

func TestHQAnchors_InsetFromEdges(t *testing.T) {
	a := HQAnchors(40, 30)
	if (a[0] != sim.Point{X: 1, Y: 14}) {
		t.Fatalf("left anchor=%v, want (1,14)", a[0])
	}
	if (a[1] != sim.Point{X: 37, Y: 14}) {
		t.Fatalf("right anchor=%v, want (37,14)", a[1])
	}
}
