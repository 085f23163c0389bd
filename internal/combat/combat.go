package combat

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"stagesim/internal/ledger"
	"stagesim/internal/logger"
	"stagesim/internal/notify"
)

//go:generate go tool mockgen -destination=./mocks/picker_mock.go -package=mocks . Picker

var (
	ErrCombatInProgress = errors.New("combat already in progress")
	ErrCombatOver       = errors.New("combat finished; reset before starting another")
	ErrEmptyRoster      = errors.New("roster is empty")
)

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

type Outcome uint8

const (
	NotStarted Outcome = iota
	InProgress
	Victory
	Defeat
)

var outcomeToString = map[Outcome]string{
	NotStarted: "not_started",
	InProgress: "in_progress",
	Victory:    "victory",
	Defeat:     "defeat",
}

func (o Outcome) String() string {
	if s, ok := outcomeToString[o]; ok {
		return s
	}
	return "unknown"
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Terminal reports Victory or Defeat.
func (o Outcome) Terminal() bool { return o == Victory || o == Defeat }

// HostileResult describes one enemy attack.
type HostileResult struct {
	Attacker string `json:"attacker"`
	Target   string `json:"target"`
	Damage   int    `json:"damage"`
	Defeated bool   `json:"defeated,omitempty"`
}

// Summary is a snapshot for reporting.
type Summary struct {
	Label          string         `json:"label"`
	Outcome        Outcome        `json:"outcome"`
	Elapsed        float64        `json:"elapsed"`
	Totals         ledger.Totals  `json:"totals"`
	DamageByActor  map[string]int `json:"damage_by_actor"`
	AlliesAlive    int            `json:"allies_alive"`
	AlliesTotal    int            `json:"allies_total"`
	EnemiesAlive   int            `json:"enemies_alive"`
	EnemiesTotal   int            `json:"enemies_total"`
	Resource       int            `json:"resource"`
	ResourceMax    int            `json:"resource_max"`
	ResourceGained int            `json:"resource_gained"`
	ResourceSpent  int            `json:"resource_spent"`
}

// Combat owns the rosters, pool, ledger and resolver for one encounter and
// is the only thing that mutates them.
type Combat struct {
	label    string
	outcome  Outcome
	allies   []*Combatant
	enemies  []*Combatant
	elapsed  float64
	pool     *ResourcePool
	ledger   *ledger.Ledger
	resolver *Resolver
	picker   Picker
	log      *logrus.Entry
	outcomes notify.Hub[Outcome]
}

// New wires a combat around pool. picker drives hostile target choice.
func New(pool *ResourcePool, picker Picker, log *logrus.Entry) *Combat {
	if pool == nil {
		pool = NewResourcePool(0, 0, 0)
	}
	c := &Combat{
		pool:   pool,
		ledger: ledger.New(),
		picker: picker,
		log:    logger.Component(log, "combat"),
	}
	c.resolver = NewResolver(pool, c.ledger, c.Elapsed, log)
	return c
}

func (c *Combat) Outcome() Outcome            { return c.outcome }
func (c *Combat) Label() string               { return c.label }
func (c *Combat) Elapsed() float64            { return c.elapsed }
func (c *Combat) Pool() *ResourcePool         { return c.pool }
func (c *Combat) Ledger() *ledger.Ledger      { return c.ledger }
func (c *Combat) Allies() []*Combatant        { return append([]*Combatant(nil), c.allies...) }
func (c *Combat) Enemies() []*Combatant       { return append([]*Combatant(nil), c.enemies...) }
func (c *Combat) LivingAllies() []*Combatant  { return living(c.allies) }
func (c *Combat) LivingEnemies() []*Combatant { return living(c.enemies) }

// OnOutcome is called on every outcome change, including Reset.
func (c *Combat) OnOutcome(fn func(Outcome)) { c.outcomes.Subscribe(fn) }

// InitializeCombat snapshots both rosters and starts the fight.
func (c *Combat) InitializeCombat(allies, enemies []*Combatant, label string) error {
	switch c.outcome {
	case InProgress:
		return ErrCombatInProgress
	case Victory, Defeat:
		return ErrCombatOver
	case NotStarted:
	}
	if len(allies) == 0 || len(enemies) == 0 {
		return fmt.Errorf("%w: %d allies, %d enemies", ErrEmptyRoster, len(allies), len(enemies))
	}
	c.allies = append([]*Combatant(nil), allies...)
	c.enemies = append([]*Combatant(nil), enemies...)
	c.label = label
	c.elapsed = 0

	c.ledger.Append(ledger.Entry{
		Category: ledger.CombatStart, Actor: "system",
		Message: fmt.Sprintf("combat %q started: %d allies vs %d enemies", label, len(allies), len(enemies)),
	})
	c.setOutcome(InProgress)
	c.log.WithFields(logrus.Fields{
		"label":   label,
		"allies":  len(allies),
		"enemies": len(enemies),
	}).Info("combat started")
	c.evaluate()
	return nil
}

// UseAbility fires actor's ability at the enemy roster.
func (c *Combat) UseAbility(actor *Combatant) SkillResult {
	if actor == nil {
		return SkillResult{Reason: NotInRoster, Message: "no actor"}
	}
	if c.outcome != InProgress {
		return failed(actor, WrongCombatState, "combat is %s", c.outcome)
	}
	if !contains(c.allies, actor) {
		return failed(actor, NotInRoster, "%s is not in the ally roster", actor.Name)
	}
	if !actor.Alive() {
		return failed(actor, ActorDefeated, "%s is defeated", actor.Name)
	}
	res := c.resolver.Execute(actor, c.enemies)
	if res.Success {
		c.evaluate()
	}
	return res
}

// ProcessHostileAction has enemy strike a uniformly random living ally.
func (c *Combat) ProcessHostileAction(enemy *Combatant) (HostileResult, bool) {
	if c.outcome != InProgress || enemy == nil || !enemy.Alive() || !contains(c.enemies, enemy) {
		return HostileResult{}, false
	}
	targets := living(c.allies)
	if len(targets) == 0 {
		return HostileResult{}, false
	}
	idx := 0
	if c.picker != nil && len(targets) > 1 {
		idx = c.picker.Intn(len(targets))
		if idx < 0 || idx >= len(targets) {
			idx = 0
		}
	}
	t := targets[idx]
	dealt := t.TakeDamage(enemy.Attack)
	res := HostileResult{Attacker: enemy.ID, Target: t.ID, Damage: dealt, Defeated: !t.Alive()}

	c.ledger.Append(ledger.Entry{
		T: c.elapsed, Category: ledger.DamageTaken, Actor: enemy.ID, Target: t.ID, Value: dealt,
		Message: fmt.Sprintf("%s hit %s for %d (HP %d/%d)", enemy.Name, t.Name, dealt, t.HP, t.MaxHP),
	})
	if res.Defeated {
		c.ledger.Append(ledger.Entry{
			T: c.elapsed, Category: ledger.UnitDefeated, Actor: enemy.ID, Target: t.ID,
			Message: fmt.Sprintf("%s defeated %s", enemy.Name, t.Name),
		})
	}
	c.evaluate()
	return res, true
}

// Heal restores HP to a living ally and records it.
func (c *Combat) Heal(target *Combatant, amount int, source string) int {
	if c.outcome != InProgress || target == nil || !contains(c.allies, target) {
		return 0
	}
	gained := target.Heal(amount)
	if gained == 0 {
		return 0
	}
	c.ledger.Append(ledger.Entry{
		T: c.elapsed, Category: ledger.Heal, Actor: source, Target: target.ID, Value: gained,
		Message: fmt.Sprintf("%s healed %s for %d (HP %d/%d)", source, target.Name, gained, target.HP, target.MaxHP),
	})
	return gained
}

// Tick advances the pool and living allies' cooldowns by dt.
func (c *Combat) Tick(dt float64) {
	if c.outcome != InProgress || dt <= 0 {
		return
	}
	c.elapsed += dt
	c.pool.Tick(dt)
	for _, a := range c.allies {
		if a.Alive() {
			a.TickCooldown(dt)
		}
	}
}

func (c *Combat) GetOutcomeSummary() Summary {
	return Summary{
		Label:          c.label,
		Outcome:        c.outcome,
		Elapsed:        c.elapsed,
		Totals:         c.ledger.Totals(),
		DamageByActor:  c.ledger.DamageByActor(),
		AlliesAlive:    len(living(c.allies)),
		AlliesTotal:    len(c.allies),
		EnemiesAlive:   len(living(c.enemies)),
		EnemiesTotal:   len(c.enemies),
		Resource:       c.pool.Current(),
		ResourceMax:    c.pool.Max(),
		ResourceGained: c.pool.Gained(),
		ResourceSpent:  c.pool.Spent(),
	}
}

// Reset clears rosters, pool and ledger and returns to NotStarted.
func (c *Combat) Reset() {
	c.allies = nil
	c.enemies = nil
	c.label = ""
	c.elapsed = 0
	c.pool.Reset()
	c.ledger.Reset()
	if c.outcome != NotStarted {
		c.setOutcome(NotStarted)
	}
}

// evaluate runs after every mutation. An enemy wipe wins over an ally wipe.
func (c *Combat) evaluate() {
	if c.outcome != InProgress {
		return
	}
	switch {
	case allDown(c.enemies):
		c.finish(Victory)
	case allDown(c.allies):
		c.finish(Defeat)
	}
}

func (c *Combat) finish(o Outcome) {
	c.setOutcome(o)
	c.ledger.Append(ledger.Entry{
		T: c.elapsed, Category: ledger.CombatEnd, Actor: "system",
		Message: fmt.Sprintf("combat %q ended in %s after %.1fs", c.label, o, c.elapsed),
	})
	c.log.WithFields(logrus.Fields{
		"label":   c.label,
		"outcome": o.String(),
		"elapsed": c.elapsed,
		"damage":  c.ledger.Totals().DamageDealt,
	}).Info("combat finished")
}

func (c *Combat) setOutcome(o Outcome) {
	from := c.outcome
	c.outcome = o
	if from != o && c.ledger != nil && o != NotStarted {
		c.ledger.Append(ledger.Entry{
			T: c.elapsed, Category: ledger.StateChange, Actor: "system",
			Message: fmt.Sprintf("%s -> %s", from, o),
		})
	}
	c.outcomes.Publish(o)
}

func living(units []*Combatant) []*Combatant {
	var out []*Combatant
	for _, u := range units {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

func allDown(units []*Combatant) bool {
	for _, u := range units {
		if u.Alive() {
			return false
		}
	}
	return true
}

func contains(units []*Combatant, u *Combatant) bool {
	for _, x := range units {
		if x == u {
			return true
		}
	}
	return false
}
