// Package encounter plays a whole stage: walk to the battle cell, fight with
// an automatic policy, then grant and check the rewards.
package encounter

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"

	"stagesim/internal/combat"
	"stagesim/internal/config"
	"stagesim/internal/grid"
	"stagesim/internal/ledger"
	"stagesim/internal/logger"
	"stagesim/internal/reward"
	"stagesim/internal/stage"
	"stagesim/internal/util"
)

var (
	ErrUnknownStage = errors.New("unknown stage")
	ErrUnknownUnit  = errors.New("unknown unit")
	ErrNoRoute      = errors.New("no route to battle cell")
	ErrGateRefused  = errors.New("entry gate refused battle")
)

const (
	DefaultTick       = 0.1
	DefaultMaxSeconds = 180.0
)

type Options struct {
	Seed       int64
	Tick       float64
	MaxSeconds float64
	// Record keeps every ledger entry in the result.
	Record bool
	Policy combat.Policy
	Log    *logrus.Entry
}

func (o *Options) defaults() {
	if o.Tick <= 0 {
		o.Tick = DefaultTick
	}
	if o.MaxSeconds <= 0 {
		o.MaxSeconds = DefaultMaxSeconds
	}
	if o.Policy == nil {
		o.Policy = combat.PriorityPolicy{}
	}
}

type Result struct {
	RunID            string             `json:"run_id"`
	Stage            string             `json:"stage"`
	Seed             int64              `json:"seed"`
	Win              bool               `json:"win"`
	TimedOut         bool               `json:"timed_out,omitempty"`
	Outcome          combat.Outcome     `json:"outcome"`
	FinalState       stage.State        `json:"final_state"`
	Duration         float64            `json:"duration"`
	DPS              float64            `json:"dps"`
	Path             []grid.Pos         `json:"path"`
	Moves            int                `json:"moves"`
	Transitions      []stage.Transition `json:"transitions"`
	Gate             stage.GateResult   `json:"gate"`
	Summary          combat.Summary     `json:"summary"`
	DamageByAbility  map[string]int     `json:"damage_by_ability,omitempty"`
	AbilityUses      map[string]int     `json:"ability_uses,omitempty"`
	HostileAttacks   int                `json:"hostile_attacks"`
	LedgerConsistent bool               `json:"ledger_consistent"`
	Rewards          reward.GrantResult `json:"rewards"`
	RewardCheck      reward.Validation  `json:"reward_check"`
	Inventory        map[string]int     `json:"inventory,omitempty"`
	Events           []ledger.Entry     `json:"events,omitempty"`
	Meta             Meta               `json:"meta"`
}

type Meta struct {
	StageName string     `json:"stage_name"`
	Students  []UnitMeta `json:"students"`
	Enemies   []UnitMeta `json:"enemies"`
	Notes     []string   `json:"notes,omitempty"`
}

type UnitMeta struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	MaxHP   int    `json:"max_hp"`
	HP      int    `json:"hp"`
	Ability string `json:"ability,omitempty"`
	Uses    int    `json:"uses,omitempty"`
}

// RunSingle plays stageID from b once. The returned Result is filled as far
// as the run got, even when err is non-nil.
func RunSingle(b *config.Bundle, stageID string, opts Options) (Result, error) {
	opts.defaults()
	log := logger.Component(opts.Log, "encounter").WithFields(logrus.Fields{"stage": stageID, "seed": opts.Seed})
	res := Result{Stage: stageID, Seed: opts.Seed}

	def, ok := b.Stages.Stage(stageID)
	if !ok {
		return res, fmt.Errorf("%w: %s", ErrUnknownStage, stageID)
	}
	res.Meta.StageName = def.Name
	if def.Note != "" {
		res.Meta.Notes = append(res.Meta.Notes, def.Note)
	}

	// ---- Traversal ----
	run := stage.NewRun(opts.Log)
	run.OnTransition(func(t stage.Transition) { res.Transitions = append(res.Transitions, t) })
	if err := run.InitializeFromDef(def); err != nil {
		return res, err
	}
	res.RunID = run.ID().String()
	log = log.WithField("run", res.RunID)

	steps, reached := run.PathTo(run.BattleCell())
	for _, p := range steps {
		if err := run.Move(p); err != nil {
			return finishEarly(&res, run), fmt.Errorf("walk to %s: %w", p, err)
		}
		res.Path = append(res.Path, p)
	}
	res.Moves = run.Moves()
	if !reached {
		return finishEarly(&res, run), fmt.Errorf("%w: stopped at %s after %d moves", ErrNoRoute, run.Player(), run.Moves())
	}

	gate := stage.NewGate(opts.Log)
	res.Gate = gate.TryEnter(run)
	if !res.Gate.OK {
		return finishEarly(&res, run), fmt.Errorf("%w: %s", ErrGateRefused, res.Gate.Message)
	}

	// ---- Roster ----
	students, enemies, err := buildRoster(b, def)
	if err != nil {
		return finishEarly(&res, run), err
	}

	pool := combat.NewResourcePool(def.Cost.Max, def.Cost.Regen, def.Cost.Start)
	c := combat.New(pool, util.New(opts.Seed), opts.Log)
	if err := c.InitializeCombat(students, enemies, def.ID); err != nil {
		return finishEarly(&res, run), err
	}

	// ---- Simulation loop ----
	ai := combat.NewHostileAI(enemies)
	damageByAbility := map[string]int{}
	for c.Outcome() == combat.InProgress && c.Elapsed() < opts.MaxSeconds {
		c.Tick(opts.Tick)

		for _, e := range ai.Update(opts.Tick) {
			if _, ok := c.ProcessHostileAction(e); ok {
				res.HostileAttacks++
			}
			if c.Outcome() != combat.InProgress {
				break
			}
		}

		// Each ally fires at most once per tick: a fired ability is on cooldown.
		for range students {
			if c.Outcome() != combat.InProgress {
				break
			}
			actor := opts.Policy.Next(c.LivingAllies(), pool)
			if actor == nil {
				break
			}
			sr := c.UseAbility(actor)
			if !sr.Success {
				log.WithFields(logrus.Fields{"actor": actor.ID, "reason": sr.Reason.String()}).Debug("policy pick failed")
				break
			}
			damageByAbility[sr.Ability] += sr.TotalDamage
		}
	}

	outcome := c.Outcome()
	res.Outcome = outcome
	res.Win = outcome == combat.Victory
	res.TimedOut = outcome == combat.InProgress
	if res.TimedOut {
		res.Meta.Notes = append(res.Meta.Notes, fmt.Sprintf("time limit %.0fs reached", opts.MaxSeconds))
	}
	res.Duration = c.Elapsed()
	res.Summary = c.GetOutcomeSummary()
	res.DPS = float64(res.Summary.Totals.DamageDealt) / (res.Duration + 1e-6)
	res.DamageByAbility = damageByAbility
	res.AbilityUses = map[string]int{}
	for _, s := range students {
		if s.AbilityUses > 0 {
			res.AbilityUses[s.ID] = s.AbilityUses
		}
	}

	entries := c.Ledger().Entries()
	totals, byActor := ledger.Recompute(entries)
	res.LedgerConsistent = totals == res.Summary.Totals && reflect.DeepEqual(byActor, res.Summary.DamageByActor)
	if opts.Record {
		res.Events = entries
	}
	res.Meta.Students = unitMeta(students)
	res.Meta.Enemies = unitMeta(enemies)

	// ---- Stage completion and rewards ----
	if err := run.CompleteBattle(res.Win); err != nil {
		return finishEarly(&res, run), err
	}
	engine := reward.NewEngine(reward.NewInventory(), opts.Log)
	if res.Win {
		if err := run.ClearStage(); err != nil {
			return finishEarly(&res, run), err
		}
		res.Rewards, res.RewardCheck = engine.ValidateFullProcess(def, outcome)
	} else {
		res.RewardCheck = engine.ValidateConditions(def, outcome)
	}
	res.Inventory = engine.Inventory().Snapshot()
	res.FinalState = run.State()

	log.WithFields(logrus.Fields{
		"outcome":  outcome.String(),
		"duration": res.Duration,
		"damage":   res.Summary.Totals.DamageDealt,
		"rewards":  res.Rewards.Count,
	}).Info("encounter finished")
	return res, nil
}

func finishEarly(res *Result, run *stage.Run) Result {
	res.Moves = run.Moves()
	res.FinalState = run.State()
	return *res
}

// buildRoster instantiates the stage's students and enemies. Repeated enemy
// ids are numbered from 2.
func buildRoster(b *config.Bundle, def *config.StageDef) ([]*combat.Combatant, []*combat.Combatant, error) {
	book, err := combat.NewAbilityBook(b.Abilities)
	if err != nil {
		return nil, nil, err
	}
	var students []*combat.Combatant
	for _, id := range def.Students {
		d, ok := b.Roster.Student(id)
		if !ok {
			return nil, nil, fmt.Errorf("%w: student %s", ErrUnknownUnit, id)
		}
		var ab *combat.Ability
		if d.Ability != "" {
			if ab, ok = book.Get(d.Ability); !ok {
				return nil, nil, fmt.Errorf("%w: ability %s of %s", ErrUnknownUnit, d.Ability, id)
			}
		}
		students = append(students, combat.NewStudent(d, ab))
	}

	var enemies []*combat.Combatant
	seen := map[string]int{}
	for _, id := range def.Enemies {
		d, ok := b.Roster.Enemy(id)
		if !ok {
			return nil, nil, fmt.Errorf("%w: enemy %s", ErrUnknownUnit, id)
		}
		idx := 0
		if n := seen[id]; n > 0 {
			idx = n + 1
		}
		seen[id]++
		enemies = append(enemies, combat.NewEnemy(d, idx))
	}
	return students, enemies, nil
}

func unitMeta(units []*combat.Combatant) []UnitMeta {
	out := make([]UnitMeta, 0, len(units))
	for _, u := range units {
		m := UnitMeta{ID: u.ID, Name: u.Name, MaxHP: u.MaxHP, HP: u.HP, Uses: u.AbilityUses}
		if u.Ability != nil {
			m.Ability = u.Ability.ID
		}
		out = append(out, m)
	}
	return out
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
