package sim

import "testing"

func TestVisibility_BaseRadius(t *testing.T) {
	w := NewWorld(
		WithSize(40, 30),
		WithSeed(1),
		WithUnit(FactionRed, RoleInfantry, Point{20, 15}),
	)
	v := w.computeVisibility()

	if !v.Sees(FactionRed, Point{25, 15}) {
		t.Error("tile at distance 5 should be visible")
	}
	if v.Sees(FactionRed, Point{26, 15}) {
		t.Error("tile at distance 6 should not be visible")
	}
	if !v.Sees(FactionRed, Point{23, 13}) {
		t.Error("tile at Manhattan distance 5 (diagonal) should be visible")
	}
	if v.Sees(FactionBlue, Point{20, 15}) {
		t.Error("blue should not share red's vision of the unit tile itself")
	}
}

func TestVisibility_RoleBonuses(t *testing.T) {
	w := NewWorld(
		WithSize(60, 30),
		WithSeed(1),
		WithUnit(FactionRed, RoleScout, Point{20, 15}),
		WithUnit(FactionRed, RoleSpotter, Point{40, 15}),
	)
	v := w.computeVisibility()

	// Scout: base 5 + 1.
	if !v.Sees(FactionRed, Point{26, 15}) {
		t.Error("scout should see distance 6")
	}
	if v.Sees(FactionRed, Point{27, 15}) {
		t.Error("scout should not see distance 7")
	}
	// Spotter: base 5 + 2.
	if !v.Sees(FactionRed, Point{47, 15}) {
		t.Error("spotter should see distance 7")
	}
	if v.Sees(FactionRed, Point{48, 15}) {
		t.Error("spotter should not see distance 8")
	}
}

func TestVisibility_FogShrinksRadius(t *testing.T) {
	w := NewWorld(
		WithSize(40, 30),
		WithSeed(1),
		WithWeather(WeatherFog),
		WithUnit(FactionRed, RoleInfantry, Point{20, 15}),
	)
	v := w.computeVisibility()

	if !v.Sees(FactionRed, Point{23, 15}) {
		t.Error("under fog, distance 3 should remain visible")
	}
	if v.Sees(FactionRed, Point{24, 15}) {
		t.Error("under fog, distance 4 should be hidden")
	}
}

func TestVisibility_HQProvidesVision(t *testing.T) {
	w := NewWorld(WithSize(40, 30), WithSeed(1))
	v := w.computeVisibility()

	hq := w.Faction(FactionRed).HQ
	probe := Point{hq.Origin.X + baseVisionRadius, hq.Origin.Y}
	if !v.Sees(FactionRed, probe) {
		t.Errorf("HQ footprint should project vision to %v", probe)
	}
	if v.VisibleCount(FactionRed) == 0 {
		t.Error("a faction with an HQ should never be fully blind")
	}
}

func TestVisibility_OwnedWatchtower(t *testing.T) {
	w := NewWorld(
		WithSize(40, 30),
		WithSeed(1),
		WithBuilding(BuildingWatchtower, Point{20, 5}),
	)
	// Neutral towers project nothing.
	v := w.computeVisibility()
	if v.Sees(FactionRed, Point{20, 5}) {
		t.Fatal("a neutral watchtower should not grant vision")
	}

	w.Buildings()[0].Owner = FactionRed
	v = w.computeVisibility()
	probe := Point{20 + baseVisionRadius + watchtowerVisionBonus, 5}
	if !v.Sees(FactionRed, probe) {
		t.Errorf("owned watchtower should see out to %v", probe)
	}
	if v.Sees(FactionRed, Point{probe.X + 1, 5}) {
		t.Error("watchtower vision should stop at base+bonus")
	}
}

func TestVisibility_NilSafe(t *testing.T) {
	var v *Visibility
	if v.Sees(FactionRed, Point{0, 0}) {
		t.Error("nil visibility should see nothing")
	}
	if v.VisibleCount(FactionBlue) != 0 {
		t.Error("nil visibility count should be zero")
	}
}
