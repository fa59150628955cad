package sim

import "testing"

// pinAll freezes every unit in place so morale tests see stable adjacency.
func pinAll(w *World) {
	for _, u := range w.Units() {
		u.MoveCooldown = 100000
	}
}

func TestMorale_AlliesRaiseEnemiesDrain(t *testing.T) {
	w := NewWorld(
		WithSize(40, 30),
		WithSeed(1),
		WithUnit(FactionRed, RoleInfantry, Point{20, 15}),
		WithUnit(FactionRed, RoleInfantry, Point{21, 15}),
		WithUnit(FactionBlue, RoleInfantry, Point{30, 5}),
	)
	pinAll(w)
	u := w.Units()[0]

	// Force supply so the ally bonus is not zeroed out.
	w.Faction(FactionRed).HQ.Origin = Point{19, 15}
	w.AdvanceTick()
	if u.Morale != moraleStart+1 {
		t.Fatalf("morale=%d, want %d: one adjacent ally is +1/tick", u.Morale, moraleStart+1)
	}
}

func TestMorale_AdjacentEnemyOutweighsAlly(t *testing.T) {
	w := NewWorld(
		WithSize(40, 30),
		WithSeed(1),
		WithUnit(FactionRed, RoleTank, Point{20, 15}),
		WithUnit(FactionRed, RoleTank, Point{19, 15}),
		WithUnit(FactionBlue, RoleTank, Point{21, 15}),
	)
	pinAll(w)
	u := w.Units()[0]
	w.Faction(FactionRed).HQ.Origin = Point{18, 15}

	w.AdvanceTick()
	// +1 ally, -2 enemy.
	if u.Morale != moraleStart-1 {
		t.Fatalf("morale=%d, want %d", u.Morale, moraleStart-1)
	}
}

func TestMorale_UnsuppliedGainsNothing(t *testing.T) {
	// Three reds clustered far from their HQ: the center unit has two
	// adjacent allies but no supply line, so its +2 delta is clamped to 0.
	w := NewWorld(
		WithSize(40, 30),
		WithSeed(1),
		WithUnit(FactionRed, RoleInfantry, Point{20, 15}),
		WithUnit(FactionRed, RoleInfantry, Point{19, 15}),
		WithUnit(FactionRed, RoleInfantry, Point{21, 15}),
	)
	pinAll(w)
	u := w.Units()[0]

	w.AdvanceTick()
	if u.Supplied {
		t.Fatal("a cluster with no path to the HQ should be unsupplied")
	}
	if u.Morale != moraleStart {
		t.Fatalf("morale=%d, want unchanged %d while unsupplied", u.Morale, moraleStart)
	}
}

func TestMorale_LowMoraleForcesRetreat(t *testing.T) {
	w := NewWorld(
		WithSize(40, 30),
		WithSeed(1),
		WithUnit(FactionRed, RoleInfantry, Point{10, 5}),
	)
	u := w.Units()[0]
	u.Morale = moraleRetreatBelow - 1

	w.AdvanceTick()
	// Blue HQ sits on the right edge; retreat must increase distance to it,
	// and the fixed neighbor order picks -x first.
	if (u.Pos != Point{9, 5}) {
		t.Fatalf("pos=%v, want (9,5): broken units fall back from the enemy HQ", u.Pos)
	}
}

func TestMorale_AllyDeathShocksNeighbors(t *testing.T) {
	w := NewWorld(
		WithSize(40, 30),
		WithSeed(1),
		WithUnit(FactionRed, RoleInfantry, Point{20, 15}),
		WithUnit(FactionRed, RoleInfantry, Point{21, 15}),
		WithUnit(FactionRed, RoleInfantry, Point{25, 15}),
	)
	victim, adjacent, distant := w.Units()[0], w.Units()[1], w.Units()[2]

	w.killUnit(victim, nil)
	if adjacent.Morale != moraleStart-moraleAllyDeathShock {
		t.Errorf("adjacent ally morale=%d, want %d", adjacent.Morale, moraleStart-moraleAllyDeathShock)
	}
	if distant.Morale != moraleStart {
		t.Errorf("distant ally morale=%d, want unchanged %d", distant.Morale, moraleStart)
	}
}

func TestMorale_CommanderDeathShocksRoster(t *testing.T) {
	w := NewWorld(
		WithSize(40, 30),
		WithSeed(1),
		WithUnit(FactionRed, RoleCommander, Point{20, 15}),
		WithUnit(FactionRed, RoleInfantry, Point{21, 15}),
		WithUnit(FactionRed, RoleInfantry, Point{30, 25}),
		WithUnit(FactionBlue, RoleInfantry, Point{5, 25}),
	)
	commander := w.Units()[0]
	adjacent, distant, foe := w.Units()[1], w.Units()[2], w.Units()[3]

	w.killUnit(commander, nil)
	// Adjacent ally takes both the proximity shock and the commander shock.
	if want := moraleStart - moraleAllyDeathShock - moraleCommanderShock; adjacent.Morale != want {
		t.Errorf("adjacent ally morale=%d, want %d", adjacent.Morale, want)
	}
	if want := moraleStart - moraleCommanderShock; distant.Morale != want {
		t.Errorf("distant ally morale=%d, want %d", distant.Morale, want)
	}
	if foe.Morale != moraleStart {
		t.Errorf("enemy morale=%d, want unchanged %d", foe.Morale, moraleStart)
	}
}

func TestSupply_AttritionKillsCutOffUnits(t *testing.T) {
	w := NewWorld(
		WithSize(40, 30),
		WithSeed(1),
		WithSink(NewMemorySink()),
		WithUnit(FactionRed, RoleInfantry, Point{20, 15}),
		// Keep blue solvent so the battle is not decided before the
		// attrition interval elapses.
		WithResources(FactionBlue, 2),
	)
	pinAll(w)
	u := w.Units()[0]
	u.Health = 1

	for i := 0; i < attritionInterval; i++ {
		w.AdvanceTick()
	}
	if u.Alive() {
		t.Fatal("a 1hp unsupplied unit should die to attrition on the interval tick")
	}
	sink := w.sink.(*MemorySink)
	if got := sink.FirstTick(EventDeath); got != attritionInterval {
		t.Fatalf("death tick=%d, want %d", got, attritionInterval)
	}
}

func TestMorale_ClampsToBounds(t *testing.T) {
	if got := clampMorale(-5); got != 0 {
		t.Errorf("clampMorale(-5)=%d, want 0", got)
	}
	if got := clampMorale(150); got != moraleMax {
		t.Errorf("clampMorale(150)=%d, want %d", got, moraleMax)
	}
}
