package sim

import "testing"

func occupyBy(f Faction, p Point) map[Point]*Unit {
	return map[Point]*Unit{p: {ID: 1, Faction: f, Pos: p}}
}

func TestTerritory_CaptureAtThreshold(t *testing.T) {
	tr := NewTerritory(10, 10)
	p := Point{4, 4}
	occ := occupyBy(FactionRed, p)

	for i := 0; i < captureThreshold-1; i++ {
		tr.Advance(occ)
	}
	if got := tr.OwnerAt(p); got != FactionNone {
		t.Fatalf("owner after %d ticks=%v, want none", captureThreshold-1, got)
	}

	tr.Advance(occ)
	if got := tr.OwnerAt(p); got != FactionRed {
		t.Fatalf("owner after %d ticks=%v, want red", captureThreshold, got)
	}
	if tr.OwnedCount(FactionRed) != 1 {
		t.Fatalf("red owned count=%d, want 1", tr.OwnedCount(FactionRed))
	}
}

func TestTerritory_VacatingResetsProgress(t *testing.T) {
	tr := NewTerritory(10, 10)
	p := Point{4, 4}
	occ := occupyBy(FactionRed, p)

	for i := 0; i < captureThreshold-1; i++ {
		tr.Advance(occ)
	}
	// One unoccupied tick wipes all accumulated progress.
	tr.Advance(map[Point]*Unit{})
	for i := 0; i < captureThreshold-1; i++ {
		tr.Advance(occ)
	}
	if got := tr.OwnerAt(p); got != FactionNone {
		t.Fatalf("owner=%v, want none: progress must restart after a gap", got)
	}
}

func TestTerritory_ContestedCaptureRestarts(t *testing.T) {
	tr := NewTerritory(10, 10)
	p := Point{4, 4}

	for i := 0; i < captureThreshold-1; i++ {
		tr.Advance(occupyBy(FactionRed, p))
	}
	// Blue takes the tile over; red's progress is discarded.
	tr.Advance(occupyBy(FactionBlue, p))
	for i := 0; i < captureThreshold-2; i++ {
		tr.Advance(occupyBy(FactionBlue, p))
	}
	if got := tr.OwnerAt(p); got != FactionNone {
		t.Fatalf("owner=%v, want none at blue progress %d", got, captureThreshold-1)
	}
	tr.Advance(occupyBy(FactionBlue, p))
	if got := tr.OwnerAt(p); got != FactionBlue {
		t.Fatalf("owner=%v, want blue", got)
	}
}

func TestTerritory_OwnedTileDecaysWhenVacant(t *testing.T) {
	tr := NewTerritory(10, 10)
	p := Point{4, 4}
	occ := occupyBy(FactionRed, p)

	for i := 0; i < captureThreshold; i++ {
		tr.Advance(occ)
	}
	empty := map[Point]*Unit{}
	for i := 0; i < vacateThreshold-1; i++ {
		tr.Advance(empty)
	}
	if got := tr.OwnerAt(p); got != FactionRed {
		t.Fatalf("owner=%v, want red one tick before the vacate threshold", got)
	}
	tr.Advance(empty)
	if got := tr.OwnerAt(p); got != FactionNone {
		t.Fatalf("owner=%v, want none after %d vacant ticks", got, vacateThreshold)
	}
}

func TestTerritory_PresenceResetsVacancy(t *testing.T) {
	tr := NewTerritory(10, 10)
	p := Point{4, 4}
	occ := occupyBy(FactionRed, p)

	for i := 0; i < captureThreshold; i++ {
		tr.Advance(occ)
	}
	empty := map[Point]*Unit{}
	for i := 0; i < vacateThreshold-1; i++ {
		tr.Advance(empty)
	}
	// A single friendly visit rearms the full vacate window.
	tr.Advance(occ)
	for i := 0; i < vacateThreshold-1; i++ {
		tr.Advance(empty)
	}
	if got := tr.OwnerAt(p); got != FactionRed {
		t.Fatalf("owner=%v, want red: vacancy must reset on reoccupation", got)
	}
}

func TestTerritory_HQTilesNeverChangeHands(t *testing.T) {
	hq := NewHQ(FactionBlue, Point{2, 2}, hqMaxHealth)
	tr := NewTerritory(10, 10, hq)

	p := Point{2, 2}
	if got := tr.OwnerAt(p); got != FactionBlue {
		t.Fatalf("HQ tile owner=%v, want blue from construction", got)
	}
	occ := occupyBy(FactionRed, p)
	for i := 0; i < captureThreshold*2; i++ {
		tr.Advance(occ)
	}
	if got := tr.OwnerAt(p); got != FactionBlue {
		t.Fatalf("HQ tile owner=%v, want blue: footprint is permanent", got)
	}
}
