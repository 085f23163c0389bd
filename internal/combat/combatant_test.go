package combat

import (
	"errors"
	"testing"

	"stagesim/internal/config"
)

func TestTakeDamageSubtractsDefense(t *testing.T) {
	c := &Combatant{MaxHP: 1000, HP: 1000, Defense: 50}
	if got := c.TakeDamage(200); got != 150 {
		t.Fatalf("TakeDamage(200) = %d, want 150", got)
	}
	if c.HP != 850 {
		t.Fatalf("HP = %d, want 850", c.HP)
	}
}

func TestTakeDamage(t *testing.T) {
	tests := []struct {
		name    string
		hp, def int
		raw     int
		want    int
		wantHP  int
	}{
		{"minimum one through heavy armor", 100, 500, 100, 1, 99},
		{"overkill clamps at zero", 30, 0, 100, 100, 0},
		{"zero raw", 100, 0, 0, 0, 100},
		{"negative raw", 100, 0, -5, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Combatant{MaxHP: tt.hp, HP: tt.hp, Defense: tt.def}
			if got := c.TakeDamage(tt.raw); got != tt.want {
				t.Fatalf("TakeDamage(%d) = %d, want %d", tt.raw, got, tt.want)
			}
			if c.HP != tt.wantHP {
				t.Fatalf("HP = %d, want %d", c.HP, tt.wantHP)
			}
		})
	}
}

func TestTakeDamageOnDeadTarget(t *testing.T) {
	c := &Combatant{MaxHP: 10, HP: 0}
	if got := c.TakeDamage(50); got != 0 || c.HP != 0 {
		t.Fatalf("dead target took %d, HP %d", got, c.HP)
	}
}

func TestHeal(t *testing.T) {
	c := &Combatant{MaxHP: 100, HP: 70}
	if got := c.Heal(50); got != 30 || c.HP != 100 {
		t.Fatalf("Heal(50) = %d, HP %d; want 30, 100", got, c.HP)
	}
	c.HP = 0
	if got := c.Heal(50); got != 0 || c.Alive() {
		t.Fatalf("dead unit healed for %d", got)
	}
}

func TestTickCooldownFloorsAtZero(t *testing.T) {
	c := &Combatant{CooldownRemaining: 1.0}
	c.TickCooldown(0.4)
	if c.CooldownRemaining < 0.59 || c.CooldownRemaining > 0.61 {
		t.Fatalf("cooldown = %v, want 0.6", c.CooldownRemaining)
	}
	c.TickCooldown(5)
	if c.CooldownRemaining != 0 {
		t.Fatalf("cooldown = %v, want 0", c.CooldownRemaining)
	}
}

func TestReady(t *testing.T) {
	pool := NewResourcePool(10, 0, 4)
	c := &Combatant{MaxHP: 10, HP: 10, Ability: &Ability{Cost: 4}}
	if !c.Ready(pool) {
		t.Fatal("expected ready")
	}
	c.CooldownRemaining = 0.1
	if c.Ready(pool) {
		t.Fatal("ready while cooling down")
	}
	c.CooldownRemaining = 0
	c.Ability.Cost = 5
	if c.Ready(pool) {
		t.Fatal("ready without enough cost")
	}
	c.Ability.Cost = 0
	if c.Ready(pool) {
		t.Fatal("ready with a free ability the pool cannot spend")
	}
	c.Ability = nil
	if c.Ready(pool) {
		t.Fatal("ready without ability")
	}
}

func TestNewEnemyNumbersRepeats(t *testing.T) {
	d := config.CombatantDef{ID: "grunt", Name: "Grunt", MaxHP: 50, AttackInterval: 2}
	first, second := NewEnemy(d, 0), NewEnemy(d, 2)
	if first.ID != "grunt" || second.ID != "grunt#2" || second.Name != "Grunt 2" {
		t.Fatalf("ids %q %q name %q", first.ID, second.ID, second.Name)
	}
	if second.Side != Enemy || second.HP != 50 || second.AttackInterval != 2 {
		t.Fatalf("unexpected enemy %+v", second)
	}
}

func TestParseTargetMode(t *testing.T) {
	tests := []struct {
		in   string
		want TargetMode
		err  bool
	}{
		{"single", Single, false},
		{"Multiple", Multiple, false},
		{" AREA ", Area, false},
		{"cone", Single, true},
	}
	for _, tt := range tests {
		got, err := ParseTargetMode(tt.in)
		if tt.err {
			if !errors.Is(err, ErrUnknownTarget) {
				t.Errorf("ParseTargetMode(%q) err = %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseTargetMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestAbilityDamageRounds(t *testing.T) {
	a := Ability{BaseDamage: 100, Multiplier: 2.0}
	if a.Damage() != 200 {
		t.Fatalf("Damage() = %d, want 200", a.Damage())
	}
	a = Ability{BaseDamage: 90, Multiplier: 1.25}
	if a.Damage() != 113 {
		t.Fatalf("Damage() = %d, want 113", a.Damage())
	}
}

func TestAbilityBook(t *testing.T) {
	book, err := NewAbilityBook(&config.AbilitiesConfig{Abilities: []config.AbilityDef{
		{ID: "ex.a", Cost: 3, BaseDamage: 10, Multiplier: 1, Target: "area", Cooldown: 2},
	}})
	if err != nil {
		t.Fatalf("new book: %v", err)
	}
	a1, ok := book.Get("ex.a")
	if !ok || a1.Target != Area {
		t.Fatalf("Get = %+v, %v", a1, ok)
	}
	a1.Cost = 99
	a2, _ := book.Get("ex.a")
	if a2.Cost != 3 {
		t.Fatal("Get returned a shared definition")
	}
	if _, ok := book.Get("missing"); ok {
		t.Fatal("found missing ability")
	}

	_, err = NewAbilityBook(&config.AbilitiesConfig{Abilities: []config.AbilityDef{{ID: "bad", Target: "cone"}}})
	if !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
}
