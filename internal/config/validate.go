package config

import (
	"errors"
	"fmt"
)

var ErrInvalid = errors.New("invalid config")

var validTargets = map[string]bool{"single": true, "multiple": true, "area": true}

// Validate reports every structural problem at once. Reward lines are left
// alone: the reward engine rejects malformed lines with its own codes.
func (b *Bundle) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	var (
		abilities []AbilityDef
		roster    RosterConfig
		stages    []StageDef
	)
	if b.Abilities != nil {
		abilities = b.Abilities.Abilities
	}
	if b.Roster != nil {
		roster = *b.Roster
	}
	if b.Stages != nil {
		stages = b.Stages.Stages
	}

	seen := map[string]bool{}
	for _, a := range abilities {
		if a.ID == "" {
			add("ability without id")
			continue
		}
		if seen[a.ID] {
			add("duplicate ability %q", a.ID)
		}
		seen[a.ID] = true
		if a.BaseDamage < 0 || a.Cooldown < 0 || a.Multiplier < 0 {
			add("ability %q: negative value", a.ID)
		}
		// The pool refuses to spend zero, so a free ability could never fire.
		if a.Cost <= 0 {
			add("ability %q: cost must be positive", a.ID)
		}
		if !validTargets[a.Target] {
			add("ability %q: unknown target %q", a.ID, a.Target)
		}
	}

	checkUnits := func(kind string, defs []CombatantDef) {
		ids := map[string]bool{}
		for _, d := range defs {
			if d.ID == "" {
				add("%s without id", kind)
				continue
			}
			if ids[d.ID] {
				add("duplicate %s %q", kind, d.ID)
			}
			ids[d.ID] = true
			if d.MaxHP <= 0 {
				add("%s %q: max_hp must be positive", kind, d.ID)
			}
			if d.Ability != "" && !seen[d.Ability] {
				add("%s %q: unknown ability %q", kind, d.ID, d.Ability)
			}
		}
	}
	checkUnits("student", roster.Students)
	checkUnits("enemy", roster.Enemies)

	for _, s := range stages {
		if s.ID == "" {
			add("stage without id")
			continue
		}
		if s.Grid.Width <= 0 || s.Grid.Height <= 0 {
			add("stage %q: grid %dx%d", s.ID, s.Grid.Width, s.Grid.Height)
		}
		if s.Cost.Max <= 0 || s.Cost.Regen < 0 || s.Cost.Start < 0 {
			add("stage %q: bad cost settings", s.ID)
		}
		for _, id := range s.Students {
			if _, ok := roster.Student(id); !ok {
				add("stage %q: unknown student %q", s.ID, id)
			}
		}
		for _, id := range s.Enemies {
			if _, ok := roster.Enemy(id); !ok {
				add("stage %q: unknown enemy %q", s.ID, id)
			}
		}
	}
	return errors.Join(errs...)
}
