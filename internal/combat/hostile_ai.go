package combat

// HostileAI runs each enemy's attack timer. The driver feeds the enemies
// it returns to Combat.ProcessHostileAction.
type HostileAI struct {
	timers []attackTimer
}

type attackTimer struct {
	unit   *Combatant
	nextAt float64
}

// NewHostileAI schedules every enemy with a positive interval to attack one
// interval after the start.
func NewHostileAI(enemies []*Combatant) *HostileAI {
	ai := &HostileAI{}
	for _, e := range enemies {
		if e == nil || e.AttackInterval <= 0 {
			continue
		}
		ai.timers = append(ai.timers, attackTimer{unit: e, nextAt: e.AttackInterval})
	}
	return ai
}

// Update advances the timers by dt and returns the living enemies that are
// due, in roster order. An enemy attacks at most once per Update.
func (ai *HostileAI) Update(dt float64) []*Combatant {
	if dt <= 0 {
		return nil
	}
	var due []*Combatant
	for i := range ai.timers {
		t := &ai.timers[i]
		if !t.unit.Alive() {
			continue
		}
		t.nextAt -= dt
		if t.nextAt > accEpsilon {
			continue
		}
		t.nextAt += t.unit.AttackInterval
		if t.nextAt < 0 {
			t.nextAt = t.unit.AttackInterval
		}
		due = append(due, t.unit)
	}
	return due
}

// NextAttackIn reports the seconds until u's next attack.
func (ai *HostileAI) NextAttackIn(u *Combatant) (float64, bool) {
	for _, t := range ai.timers {
		if t.unit == u {
			return t.nextAt, true
		}
	}
	return 0, false
}
