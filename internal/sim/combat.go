package sim

const (
	attackCooldownTicks = 5 // ticks between attacks
	siegeThreshold      = 3 // adjacent-to-HQ ticks before siege damage lands
	engagementRadius    = 5 // Manhattan distance at which units lock onto foes

	shieldAuraRadius    = 2   // shieldbearer protection range
	shieldAuraReduction = 0.5 // fraction of incoming damage absorbed

	commanderAuraRadius = 3    // commander damage-boost range
	commanderAuraMul    = 1.25 // outgoing damage multiplier inside the aura
)

// attemptCombat resolves u's offensive options for this tick: a melee strike
// against an adjacent enemy unit, then siege pressure while standing on an
// enemy HQ footprint tile. The siege counter advances whether or not the
// melee attack fired; a unit parked on the HQ is besieging it regardless of
// what else it does.
func (w *World) attemptCombat(u *Unit) {
	if target := w.adjacentEnemy(u); target != nil && u.AttackCooldown == 0 {
		w.strike(u, target)
		u.AttackCooldown = attackCooldownTicks
	}

	enemy := w.factions[u.Faction.Enemy()]
	if enemy.HQ.Contains(u.Pos) && !enemy.HQ.Destroyed() {
		u.SiegeCount++
		if u.SiegeCount >= siegeThreshold {
			enemy.HQ.Health -= u.Damage
			if enemy.HQ.Health < 0 {
				enemy.HQ.Health = 0
			}
			u.SiegeCount = 0
			w.emit(EventAttackHQ, u)
		}
	} else {
		u.SiegeCount = 0
	}
}

// adjacentEnemy returns the first living enemy unit on a 4-neighbor tile,
// scanning in the fixed neighbor order.
func (w *World) adjacentEnemy(u *Unit) *Unit {
	var buf [4]Point
	for _, n := range w.grid.Neighbors4(u.Pos, buf[:0]) {
		if o, ok := w.occ[n]; ok && o.Alive() && o.Faction != u.Faction {
			return o
		}
	}
	return nil
}

// strike applies one melee attack from attacker to defender.
func (w *World) strike(attacker, defender *Unit) {
	dmg := attacker.Damage
	if w.nearCommander(attacker) {
		dmg = int(float64(dmg) * commanderAuraMul)
	}
	w.emit(EventAttack, attacker)
	w.applyDamage(defender, attacker, dmg)
}

// nearCommander reports whether u has a living friendly commander within the
// aura radius.
func (w *World) nearCommander(u *Unit) bool {
	for _, o := range w.units {
		if o.Alive() && o.Faction == u.Faction && o.Role == RoleCommander &&
			o.Pos.Manhattan(u.Pos) <= commanderAuraRadius {
			return true
		}
	}
	return false
}

// applyDamage deals dmg to target after shield mitigation, killing it if its
// health is exhausted. killer may be nil for non-combat damage sources.
func (w *World) applyDamage(target, killer *Unit, dmg int) {
	if target.ShieldReduction > 0 {
		dmg = int(float64(dmg) * (1 - target.ShieldReduction))
		if dmg < 1 {
			dmg = 1 // shields mitigate, never nullify
		}
	}
	target.Health -= dmg
	if target.Health <= 0 {
		w.killUnit(target, killer)
	}
}

// killUnit marks u dead and resolves everything that must happen atomically
// with the death: the death event, kill credit and possible veteran promotion
// for the killer, and morale shocks to nearby allies. The roster entry itself
// is reclaimed later by sweepRemovals so that in-flight iteration over
// w.units stays valid.
func (w *World) killUnit(u *Unit, killer *Unit) {
	if u.dead {
		return
	}
	u.dead = true
	u.Health = 0
	w.emit(EventDeath, u)

	if cur, ok := w.occ[u.Pos]; ok && cur == u {
		delete(w.occ, u.Pos)
	}
	if killer != nil && killer.Alive() && killer.Faction != u.Faction {
		killer.Kills++
		w.factions[killer.Faction].Kills++
		if killer.Kills >= veteranKillThreshold {
			killer.promote()
		}
	}
	w.shockNearbyAllies(u)
}

// RemoveUnit removes the unit with the given id from the world, if present.
// Safe to call with an unknown or already-removed id. Removal through this
// path grants no kill credit and triggers no morale shock.
func (w *World) RemoveUnit(id int) {
	u, ok := w.byID[id]
	if !ok {
		return
	}
	if !u.dead {
		u.dead = true
		if cur, occ := w.occ[u.Pos]; occ && cur == u {
			delete(w.occ, u.Pos)
		}
	}
	w.sweepRemovals()
}

// sweepRemovals compacts the roster, dropping units marked dead during the
// tick. Relative order of survivors is preserved so iteration stays stable.
func (w *World) sweepRemovals() {
	kept := w.units[:0]
	for _, u := range w.units {
		if u.dead {
			delete(w.byID, u.ID)
			continue
		}
		kept = append(kept, u)
	}
	w.units = kept
}
