package combat

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"stagesim/internal/ledger"
	"stagesim/internal/logger"
)

// FailureReason is why an ability did not fire.
type FailureReason uint8

const (
	NoFailure FailureReason = iota
	NoAbility
	OnCooldown
	InsufficientResource
	WrongCombatState
	NotInRoster
	ActorDefeated
)

var failureToString = map[FailureReason]string{
	NoFailure:            "",
	NoAbility:            "no_ability",
	OnCooldown:           "on_cooldown",
	InsufficientResource: "insufficient_resource",
	WrongCombatState:     "wrong_combat_state",
	NotInRoster:          "not_in_roster",
	ActorDefeated:        "actor_defeated",
}

func (r FailureReason) String() string {
	if s, ok := failureToString[r]; ok {
		return s
	}
	return "unknown"
}

func (r FailureReason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

type SkillResult struct {
	Success           bool          `json:"success"`
	Reason            FailureReason `json:"reason,omitempty"`
	Message           string        `json:"message"`
	Actor             string        `json:"actor"`
	Ability           string        `json:"ability,omitempty"`
	TotalDamage       int           `json:"total_damage"`
	Targets           []string      `json:"targets,omitempty"`
	Defeated          []string      `json:"defeated,omitempty"`
	CostSpent         int           `json:"cost_spent"`
	CooldownRemaining float64       `json:"cooldown_remaining,omitempty"`
}

func failed(actor *Combatant, reason FailureReason, format string, args ...any) SkillResult {
	return SkillResult{
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
		Actor:   actor.ID,
	}
}

// Resolver validates and executes abilities against the shared pool and
// writes what happened to the ledger.
type Resolver struct {
	pool   *ResourcePool
	ledger *ledger.Ledger
	clock  func() float64
	log    *logrus.Entry
}

func NewResolver(pool *ResourcePool, l *ledger.Ledger, clock func() float64, log *logrus.Entry) *Resolver {
	if clock == nil {
		clock = func() float64 { return 0 }
	}
	return &Resolver{pool: pool, ledger: l, clock: clock, log: logger.Component(log, "resolver")}
}

// Execute fires actor's ability at candidates. The order is fixed: checks,
// spend, cooldown start, target selection, damage.
func (r *Resolver) Execute(actor *Combatant, candidates []*Combatant) SkillResult {
	ab := actor.Ability
	if ab == nil {
		r.log.WithField("actor", actor.ID).Debug("no ability bound")
		return failed(actor, NoAbility, "%s has no ability", actor.Name)
	}
	if actor.CooldownRemaining > 0 {
		res := failed(actor, OnCooldown, "%s on cooldown for %.1fs", ab.Label(), actor.CooldownRemaining)
		res.Ability = ab.ID
		res.CooldownRemaining = actor.CooldownRemaining
		r.log.WithFields(logrus.Fields{"actor": actor.ID, "remaining": actor.CooldownRemaining}).Debug("ability on cooldown")
		return res
	}
	if !r.pool.TrySpend(ab.Cost) {
		res := failed(actor, InsufficientResource, "%s needs %d cost, have %d", ab.Label(), ab.Cost, r.pool.Current())
		res.Ability = ab.ID
		r.log.WithFields(logrus.Fields{"actor": actor.ID, "cost": ab.Cost, "have": r.pool.Current()}).Debug("insufficient resource")
		return res
	}

	now := r.clock()
	actor.CooldownRemaining = ab.Cooldown
	actor.AbilityUses++
	r.ledger.Append(ledger.Entry{
		T: now, Category: ledger.CostSpent, Actor: actor.ID, Value: ab.Cost,
		Message: fmt.Sprintf("%s spent %d cost (%d left)", actor.Name, ab.Cost, r.pool.Current()),
	})
	r.ledger.Append(ledger.Entry{
		T: now, Category: ledger.SkillUsed, Actor: actor.ID, Value: ab.Cost,
		Message: fmt.Sprintf("%s used %s", actor.Name, ab.Label()),
	})

	res := SkillResult{
		Success:   true,
		Actor:     actor.ID,
		Ability:   ab.ID,
		CostSpent: ab.Cost,
	}
	raw := ab.Damage()
	for _, t := range SelectTargets(ab.Target, candidates) {
		dealt := t.TakeDamage(raw)
		res.TotalDamage += dealt
		res.Targets = append(res.Targets, t.ID)
		r.ledger.Append(ledger.Entry{
			T: now, Category: ledger.DamageDealt, Actor: actor.ID, Target: t.ID, Value: dealt,
			Message: fmt.Sprintf("%s hit %s for %d (HP %d/%d)", actor.Name, t.Name, dealt, t.HP, t.MaxHP),
		})
		if !t.Alive() {
			res.Defeated = append(res.Defeated, t.ID)
			r.ledger.Append(ledger.Entry{
				T: now, Category: ledger.UnitDefeated, Actor: actor.ID, Target: t.ID,
				Message: fmt.Sprintf("%s defeated %s", actor.Name, t.Name),
			})
		}
	}
	res.Message = fmt.Sprintf("%s used %s: %d damage to %d target(s)", actor.Name, ab.Label(), res.TotalDamage, len(res.Targets))
	r.log.WithFields(logrus.Fields{
		"actor":   actor.ID,
		"ability": ab.ID,
		"damage":  res.TotalDamage,
		"targets": len(res.Targets),
	}).Debug("ability resolved")
	return res
}

// SelectTargets picks living candidates in input order. Dead ones are
// skipped without using up a slot.
func SelectTargets(mode TargetMode, candidates []*Combatant) []*Combatant {
	limit := len(candidates)
	switch mode {
	case Single:
		limit = 1
	case Multiple:
		limit = MaxMultipleTargets
	case Area:
	}
	var out []*Combatant
	for _, c := range candidates {
		if len(out) >= limit {
			break
		}
		if c != nil && c.Alive() {
			out = append(out, c)
		}
	}
	return out
}
