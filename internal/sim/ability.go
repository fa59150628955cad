package sim

const (
	medicHealInterval = 10 // ticks between medic pulses
	medicHealAmount   = 1
	medicHealRadius   = 2

	repairInterval = 10 // ticks between repair pulses
	repairAmount   = 2
	repairRadius   = 2

	barrierInterval = 50 // ticks between engineer wall placements
)

// ability is one role's support behavior: fn runs every period ticks while
// the unit lives. Roles absent from the table have no support behavior.
type ability struct {
	period int
	fn     func(*World, *Unit)
}

var abilityTable = map[Role]ability{
	RoleShieldbearer: {period: 1, fn: (*World).projectShield},
	RoleMedic:        {period: medicHealInterval, fn: (*World).healNearby},
	RoleRepairBot:    {period: repairInterval, fn: (*World).repairHQ},
	RoleEngineer:     {period: barrierInterval, fn: (*World).raiseBarrier},
}

// runAbility fires u's role ability when its period elapses. Abilities run
// after combat so a support unit that fought this tick still supports.
func (w *World) runAbility(u *Unit) {
	a, ok := abilityTable[u.Role]
	if !ok {
		return
	}
	if a.period > 1 && w.tick%a.period != 0 {
		return
	}
	a.fn(w, u)
}

// projectShield grants shield mitigation to allies within the aura radius.
// The bearer never shields itself. The flag is cleared at the top of each
// tick, so the aura lapses the moment the bearer falls.
func (w *World) projectShield(u *Unit) {
	for _, o := range w.units {
		if o == u || !o.Alive() || o.Faction != u.Faction {
			continue
		}
		if o.Pos.Manhattan(u.Pos) <= shieldAuraRadius {
			o.ShieldReduction = shieldAuraReduction
		}
	}
}

// healNearby restores health to wounded allies near the medic.
func (w *World) healNearby(u *Unit) {
	for _, o := range w.units {
		if !o.Alive() || o.Faction != u.Faction || o == u {
			continue
		}
		if o.Pos.Manhattan(u.Pos) > medicHealRadius {
			continue
		}
		o.Health += medicHealAmount
		if o.Health > o.MaxHealth {
			o.Health = o.MaxHealth
		}
	}
}

// repairHQ patches the friendly HQ while the bot stands near its footprint.
func (w *World) repairHQ(u *Unit) {
	hq := w.factions[u.Faction].HQ
	for _, t := range hq.Tiles() {
		if u.Pos.Manhattan(t) <= repairRadius {
			hq.Health += repairAmount
			if hq.Health > hq.MaxHealth {
				hq.Health = hq.MaxHealth
			}
			return
		}
	}
}

// raiseBarrier converts one open neighboring tile into a wall. Direction
// order is shuffled so fortification lines grow irregularly; tiles that are
// occupied or part of an HQ footprint or building site are skipped.
func (w *World) raiseBarrier(u *Unit) {
	dirs := [4]Point{}
	copy(dirs[:], neighborOffsets[:])
	w.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	for _, d := range dirs {
		p := Point{u.Pos.X + d.X, u.Pos.Y + d.Y}
		if w.tileBlocked(p) || w.buildingAt(p) != nil {
			continue
		}
		if w.grid.PlaceWall(p) {
			return
		}
	}
}

// buildingAt returns the building occupying tile p, or nil.
func (w *World) buildingAt(p Point) *Building {
	for _, b := range w.buildings {
		if b.Pos == p {
			return b
		}
	}
	return nil
}
