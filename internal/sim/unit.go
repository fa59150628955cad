package sim

// Role is the closed set of unit types. Behavior differences are carried as
// data (RoleStats + abilityTable), not by branching on identity strings.
type Role uint8

const (
	RoleInfantry Role = iota
	RoleTank
	RoleScout
	RoleShieldbearer
	RoleMedic
	RoleEngineer
	RoleRepairBot
	RoleSpotter
	RoleCommander
	roleCount // sentinel
)

func (r Role) String() string {
	switch r {
	case RoleInfantry:
		return "infantry"
	case RoleTank:
		return "tank"
	case RoleScout:
		return "scout"
	case RoleShieldbearer:
		return "shieldbearer"
	case RoleMedic:
		return "medic"
	case RoleEngineer:
		return "engineer"
	case RoleRepairBot:
		return "repairbot"
	case RoleSpotter:
		return "spotter"
	case RoleCommander:
		return "commander"
	default:
		return "unknown"
	}
}

// ParseRole maps a role name to its Role value.
func ParseRole(name string) (Role, bool) {
	for r := Role(0); r < roleCount; r++ {
		if r.String() == name {
			return r, true
		}
	}
	return 0, false
}

// RoleStats is the per-role {health, damage, speed, cost} tuple supplied at
// startup. The core treats the table as read-only for the session.
type RoleStats struct {
	Health int
	Damage int
	Speed  int // path steps per tick
	Cost   int // spawn cost in faction resources
}

// RoleTable maps every role to its stats.
type RoleTable map[Role]RoleStats

// DefaultRoles returns the built-in role table.
func DefaultRoles() RoleTable {
	return RoleTable{
		RoleInfantry:     {Health: 100, Damage: 10, Speed: 1, Cost: 3},
		RoleTank:         {Health: 200, Damage: 20, Speed: 1, Cost: 5},
		RoleScout:        {Health: 60, Damage: 5, Speed: 2, Cost: 2},
		RoleShieldbearer: {Health: 120, Damage: 6, Speed: 1, Cost: 4},
		RoleMedic:        {Health: 80, Damage: 3, Speed: 1, Cost: 4},
		RoleEngineer:     {Health: 90, Damage: 4, Speed: 1, Cost: 5},
		RoleRepairBot:    {Health: 70, Damage: 2, Speed: 1, Cost: 4},
		RoleSpotter:      {Health: 60, Damage: 4, Speed: 1, Cost: 3},
		RoleCommander:    {Health: 150, Damage: 12, Speed: 1, Cost: 8},
	}
}

// roleVisionBonus returns extra vision radius granted by a role.
func roleVisionBonus(r Role) int {
	switch r {
	case RoleSpotter:
		return 2
	case RoleScout:
		return 1
	default:
		return 0
	}
}

// Veteran promotion: cumulative kills at which a unit is promoted, and the
// stat bumps applied once.
const (
	veteranKillThreshold = 3
	veteranHealthBonus   = 50
	veteranDamageBonus   = 5
)

// Movement cadence: after each move the cooldown resets to a value in
// [moveCooldownMin, moveCooldownMax], scaled by the active weather.
const (
	moveCooldownMin = 10
	moveCooldownMax = 20
)

// Unit is an autonomous agent on the grid. Units belong to exactly one
// faction and live in the world's single roster; faction views are filters
// over the same objects, never second owning collections.
type Unit struct {
	ID      int
	Faction Faction
	Role    Role
	Pos     Point

	Health    int
	MaxHealth int
	Damage    int
	Speed     int

	Morale   int  // 0..100
	Supplied bool // reachable from own HQ through friendly territory

	MoveCooldown   int // ticks until the next move attempt
	AttackCooldown int // ticks until the next attack
	SlowTicks      int // idle ticks owed to slow terrain entry
	SiegeCount     int // consecutive ticks standing on enemy HQ

	// ShieldReduction is the active defensive damage multiplier complement.
	// Reset to 0 every tick and re-applied only by a nearby shieldbearer, so
	// the buff does not outlive its supporting unit's presence.
	ShieldReduction float64

	Kills   int
	Veteran bool

	dead bool // set on lethal damage; swept from the roster at phase end
}

// Alive reports whether the unit is still part of the simulation.
func (u *Unit) Alive() bool {
	return !u.dead
}

// promote applies the one-time veteran bump when the kill threshold is hit.
func (u *Unit) promote() {
	if u.Veteran || u.Kills < veteranKillThreshold {
		return
	}
	u.Veteran = true
	u.MaxHealth += veteranHealthBonus
	u.Health += veteranHealthBonus
	u.Damage += veteranDamageBonus
}
