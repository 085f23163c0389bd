package combat

import (
	"strconv"

	"stagesim/internal/config"
)

type Side uint8

const (
	Student Side = iota
	Enemy
)

func (s Side) String() string {
	switch s {
	case Student:
		return "student"
	case Enemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Combatant is the shared HP model for both sides. Students carry an
// ability, enemies an attack interval.
type Combatant struct {
	ID      string
	Name    string
	Side    Side
	MaxHP   int
	HP      int
	Attack  int
	Defense int

	Ability           *Ability
	CooldownRemaining float64
	AbilityUses       int

	AttackInterval float64
}

func NewStudent(d config.CombatantDef, ability *Ability) *Combatant {
	return &Combatant{
		ID:      d.ID,
		Name:    d.DisplayName(),
		Side:    Student,
		MaxHP:   d.MaxHP,
		HP:      d.MaxHP,
		Attack:  d.Attack,
		Defense: d.Defense,
		Ability: ability,
	}
}

// NewEnemy suffixes the id with idx so repeated spawns stay distinct.
func NewEnemy(d config.CombatantDef, idx int) *Combatant {
	c := &Combatant{
		ID:             d.ID,
		Name:           d.DisplayName(),
		Side:           Enemy,
		MaxHP:          d.MaxHP,
		HP:             d.MaxHP,
		Attack:         d.Attack,
		Defense:        d.Defense,
		AttackInterval: d.AttackInterval,
	}
	if idx > 0 {
		c.ID = d.ID + "#" + strconv.Itoa(idx)
		c.Name = c.Name + " " + strconv.Itoa(idx)
	}
	return c
}

func (c *Combatant) Alive() bool { return c.HP > 0 }

// TakeDamage applies raw minus defense, never less than 1, and returns that
// amount. HP is clamped at zero. Non-positive raw damage or a dead target
// deals nothing.
func (c *Combatant) TakeDamage(raw int) int {
	if raw <= 0 || !c.Alive() {
		return 0
	}
	actual := max(1, raw-c.Defense)
	c.HP = max(0, c.HP-actual)
	return actual
}

// Heal restores up to amount HP, capped at MaxHP, and returns the HP gained.
// The dead stay dead.
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 || !c.Alive() {
		return 0
	}
	before := c.HP
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	return c.HP - before
}

// TickCooldown decays the ability cooldown, floored at zero.
func (c *Combatant) TickCooldown(dt float64) {
	if dt <= 0 || c.CooldownRemaining <= 0 {
		return
	}
	c.CooldownRemaining -= dt
	if c.CooldownRemaining < 0 {
		c.CooldownRemaining = 0
	}
}

// Ready reports whether the ability could fire right now against pool.
func (c *Combatant) Ready(pool *ResourcePool) bool {
	if c.Ability == nil || c.Ability.Cost <= 0 || pool == nil || !c.Alive() {
		return false
	}
	return c.CooldownRemaining <= 0 && pool.Current() >= c.Ability.Cost
}
