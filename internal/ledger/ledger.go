// Package ledger is the append-only combat event log with running totals.
package ledger

import (
	"fmt"

	"stagesim/internal/notify"
)

type Category uint8

const (
	CombatStart Category = iota
	CombatEnd
	SkillUsed
	DamageDealt
	DamageTaken
	UnitDefeated
	CostSpent
	Heal
	StateChange
)

var categoryToString = map[Category]string{
	CombatStart:  "start",
	CombatEnd:    "end",
	SkillUsed:    "skill",
	DamageDealt:  "damage_dealt",
	DamageTaken:  "damage_taken",
	UnitDefeated: "defeat",
	CostSpent:    "cost_spent",
	Heal:         "heal",
	StateChange:  "state_change",
}

func (c Category) String() string {
	if s, ok := categoryToString[c]; ok {
		return s
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Entry is immutable once appended. T is simulated seconds since combat start.
type Entry struct {
	Seq      int      `json:"seq"`
	T        float64  `json:"t"`
	Category Category `json:"category"`
	Actor    string   `json:"actor"`
	Target   string   `json:"target,omitempty"`
	Value    int      `json:"value,omitempty"`
	Message  string   `json:"message"`
}

type Totals struct {
	DamageDealt   int `json:"damage_dealt"`
	DamageTaken   int `json:"damage_taken"`
	Healed        int `json:"healed"`
	SkillsUsed    int `json:"skills_used"`
	UnitsDefeated int `json:"units_defeated"`
	CostSpent     int `json:"cost_spent"`
}

func (t *Totals) add(e Entry) {
	switch e.Category {
	case DamageDealt:
		t.DamageDealt += e.Value
	case DamageTaken:
		t.DamageTaken += e.Value
	case Heal:
		t.Healed += e.Value
	case SkillUsed:
		t.SkillsUsed++
	case UnitDefeated:
		t.UnitsDefeated++
	case CostSpent:
		t.CostSpent += e.Value
	case CombatStart, CombatEnd, StateChange:
	}
}

// Ledger keeps its aggregates in step with every Append.
type Ledger struct {
	entries  []Entry
	totals   Totals
	byActor  map[string]int
	appended notify.Hub[Entry]
}

func New() *Ledger {
	return &Ledger{byActor: map[string]int{}}
}

// Subscribe registers fn to be called once per appended entry, in order.
func (l *Ledger) Subscribe(fn func(Entry)) { l.appended.Subscribe(fn) }

// Append stamps the sequence number, updates the totals and notifies.
func (l *Ledger) Append(e Entry) Entry {
	e.Seq = len(l.entries) + 1
	l.entries = append(l.entries, e)
	l.totals.add(e)
	if e.Category == DamageDealt {
		l.byActor[e.Actor] += e.Value
	}
	l.appended.Publish(e)
	return e
}

func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the log.
func (l *Ledger) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

func (l *Ledger) ByCategory(c Category) []Entry {
	return l.filter(func(e Entry) bool { return e.Category == c })
}

func (l *Ledger) ByActor(actor string) []Entry {
	return l.filter(func(e Entry) bool { return e.Actor == actor })
}

func (l *Ledger) filter(keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (l *Ledger) Totals() Totals { return l.totals }

// DamageByActor returns a copy of damage dealt per actor.
func (l *Ledger) DamageByActor() map[string]int {
	out := make(map[string]int, len(l.byActor))
	for k, v := range l.byActor {
		out[k] = v
	}
	return out
}

// Reset drops every entry and total. Subscribers stay registered.
func (l *Ledger) Reset() {
	l.entries = nil
	l.totals = Totals{}
	l.byActor = map[string]int{}
}

// Recompute derives totals and per-actor damage from a full scan.
func Recompute(entries []Entry) (Totals, map[string]int) {
	var t Totals
	byActor := map[string]int{}
	for _, e := range entries {
		t.add(e)
		if e.Category == DamageDealt {
			byActor[e.Actor] += e.Value
		}
	}
	return t, byActor
}
