package combat

// Policy chooses which ally fires next, or nil to wait.
type Policy interface {
	Next(allies []*Combatant, pool *ResourcePool) *Combatant
}

// PriorityPolicy fires the ready ally whose ability has the highest
// priority. Ties go to the lower id.
type PriorityPolicy struct{}

func (PriorityPolicy) Next(allies []*Combatant, pool *ResourcePool) *Combatant {
	var best *Combatant
	for _, a := range allies {
		if a == nil || !a.Ready(pool) {
			continue
		}
		if best == nil || a.Ability.Priority > best.Ability.Priority {
			best = a
			continue
		}
		if a.Ability.Priority == best.Ability.Priority && a.ID < best.ID {
			best = a
		}
	}
	return best
}

// SaveUpPolicy holds fire until the pool reaches Threshold, then behaves
// like PriorityPolicy.
type SaveUpPolicy struct {
	Threshold int
}

func (p SaveUpPolicy) Next(allies []*Combatant, pool *ResourcePool) *Combatant {
	if pool == nil || pool.Current() < p.Threshold {
		return nil
	}
	return PriorityPolicy{}.Next(allies, pool)
}
