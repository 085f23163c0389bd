// Package reward computes stage-clear grants and checks that what was
// granted matches the stage definition.
package reward

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"stagesim/internal/combat"
	"stagesim/internal/config"
	"stagesim/internal/logger"
	"stagesim/internal/notify"
)

type Category uint8

const (
	Currency Category = iota
	Material
	Equipment
	Experience
)

var categoryToString = map[Category]string{
	Currency:   "currency",
	Material:   "material",
	Equipment:  "equipment",
	Experience: "experience",
}

func (c Category) String() string {
	if s, ok := categoryToString[c]; ok {
		return s
	}
	return "unknown"
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryToString {
		if name == s {
			return c, true
		}
	}
	return 0, false
}

type Line struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
}

func (l Line) String() string { return fmt.Sprintf("%s x%d (%s)", l.Name, l.Quantity, l.Category) }

// Inventory accumulates granted quantities per category.
type Inventory struct {
	byCategory map[Category]int
}

func NewInventory() *Inventory { return &Inventory{byCategory: map[Category]int{}} }

func (inv *Inventory) Add(c Category, qty int) { inv.byCategory[c] += qty }

func (inv *Inventory) Get(c Category) int { return inv.byCategory[c] }

// Snapshot copies the inventory keyed by category name.
func (inv *Inventory) Snapshot() map[string]int {
	out := make(map[string]int, len(inv.byCategory))
	for c, v := range inv.byCategory {
		out[c.String()] = v
	}
	return out
}

// LinesFromDef converts the authored lines. Malformed ones are reported by
// index and left out of the result.
func LinesFromDef(def *config.StageDef) ([]Line, []Problem) {
	if def == nil {
		return nil, nil
	}
	var (
		lines    []Line
		problems []Problem
	)
	for i, rd := range def.Rewards {
		cat, ok := ParseCategory(rd.Category)
		switch {
		case !ok:
			problems = append(problems, malformed(i, "unknown category %q", rd.Category))
		case strings.TrimSpace(rd.Name) == "":
			problems = append(problems, malformed(i, "empty name"))
		case rd.Quantity <= 0:
			problems = append(problems, malformed(i, "%s: quantity %d", rd.Name, rd.Quantity))
		default:
			lines = append(lines, Line{Category: cat, Name: rd.Name, Quantity: rd.Quantity})
		}
	}
	return lines, problems
}

func malformed(i int, format string, args ...any) Problem {
	return Problem{Code: MalformedRewardLine, Line: i, Message: fmt.Sprintf(format, args...)}
}

// Engine grants rewards into an inventory and validates grants.
type Engine struct {
	inv     *Inventory
	totals  map[Category]int
	granted notify.Hub[Line]
	done    notify.Hub[GrantResult]
	log     *logrus.Entry
}

func NewEngine(inv *Inventory, log *logrus.Entry) *Engine {
	if inv == nil {
		inv = NewInventory()
	}
	return &Engine{inv: inv, totals: map[Category]int{}, log: logger.Component(log, "reward")}
}

func (e *Engine) Inventory() *Inventory { return e.inv }

// Totals is the per-category sum of everything this engine granted.
func (e *Engine) Totals() map[Category]int {
	out := make(map[Category]int, len(e.totals))
	for k, v := range e.totals {
		out[k] = v
	}
	return out
}

func (e *Engine) OnLineGranted(fn func(Line))       { e.granted.Subscribe(fn) }
func (e *Engine) OnAllGranted(fn func(GrantResult)) { e.done.Subscribe(fn) }

// ValidateConditions checks that a grant is allowed for def and outcome.
func (e *Engine) ValidateConditions(def *config.StageDef, outcome combat.Outcome) Validation {
	var v Validation
	if outcome != combat.Victory {
		v.add(Problem{Code: NotVictory, Line: -1, Message: fmt.Sprintf("outcome is %s", outcome)})
	}
	if def == nil {
		v.add(Problem{Code: MissingRewardData, Line: -1, Message: "no stage definition"})
		return v.done()
	}
	if len(def.Rewards) == 0 {
		v.add(Problem{Code: MissingRewardData, Line: -1, Message: fmt.Sprintf("stage %s has no rewards", def.ID)})
	}
	_, problems := LinesFromDef(def)
	for _, p := range problems {
		v.add(p)
	}
	return v.done()
}

// Grant re-validates and then adds every line to the inventory.
func (e *Engine) Grant(def *config.StageDef, outcome combat.Outcome) GrantResult {
	v := e.ValidateConditions(def, outcome)
	if !v.Valid {
		e.log.WithField("problems", len(v.Problems)).Warn("reward conditions not met")
		return GrantResult{Validation: v}
	}
	lines, _ := LinesFromDef(def)
	res := GrantResult{Success: true, Totals: map[Category]int{}, Validation: v}
	for _, l := range lines {
		e.inv.Add(l.Category, l.Quantity)
		e.totals[l.Category] += l.Quantity
		res.Totals[l.Category] += l.Quantity
		res.Lines = append(res.Lines, l)
		res.Count++
		e.granted.Publish(l)
	}
	e.log.WithFields(logrus.Fields{
		"stage": def.ID,
		"lines": res.Count,
	}).Info("rewards granted")
	e.done.Publish(res)
	return res
}

// ValidateGrant compares a grant with what def says should have been given.
func (e *Engine) ValidateGrant(def *config.StageDef, res GrantResult) Validation {
	var v Validation
	if !res.Success {
		v.Problems = append(v.Problems, res.Validation.Problems...)
		if len(v.Problems) == 0 {
			v.add(Problem{Code: MissingRewardData, Line: -1, Message: "grant reported failure"})
		}
		return v.done()
	}
	if def == nil {
		v.add(Problem{Code: MissingRewardData, Line: -1, Message: "no stage definition"})
		return v.done()
	}
	expected, _ := LinesFromDef(def)
	if len(expected) != res.Count {
		v.add(Problem{
			Code: CountMismatch, Line: -1, Expected: len(expected), Actual: res.Count,
			Message: fmt.Sprintf("expected %d lines, granted %d", len(expected), res.Count),
		})
	}

	used := make([]bool, len(res.Lines))
	for i, want := range expected {
		found := false
		for j, got := range res.Lines {
			if !used[j] && got == want {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			v.add(Problem{Code: LineMissing, Line: i, Message: fmt.Sprintf("%s not granted", want)})
		}
	}

	need := map[Category]int{}
	for _, l := range expected {
		need[l.Category] += l.Quantity
	}
	for _, c := range []Category{Currency, Material, Equipment, Experience} {
		want, ok := need[c]
		if !ok {
			continue
		}
		if have := e.inv.Get(c); have < want {
			v.add(Problem{
				Code: InventoryShortfall, Line: -1, Expected: want, Actual: have,
				Message: fmt.Sprintf("%s inventory %d below %d", c, have, want),
			})
		}
	}
	return v.done()
}

// ValidateFullProcess validates conditions, grants, and validates the
// grant, stopping at the first stage that fails.
func (e *Engine) ValidateFullProcess(def *config.StageDef, outcome combat.Outcome) (GrantResult, Validation) {
	if v := e.ValidateConditions(def, outcome); !v.Valid {
		return GrantResult{Validation: v}, v
	}
	res := e.Grant(def, outcome)
	if !res.Success {
		return res, res.Validation
	}
	return res, e.ValidateGrant(def, res)
}
