package combat

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"stagesim/internal/config"
)

var ErrUnknownTarget = errors.New("unknown target mode")

type TargetMode uint8

const (
	Single TargetMode = iota
	Multiple
	Area
)

// MaxMultipleTargets caps how many enemies a Multiple ability hits.
const MaxMultipleTargets = 3

var targetModeToString = map[TargetMode]string{
	Single:   "single",
	Multiple: "multiple",
	Area:     "area",
}

func (m TargetMode) String() string {
	if s, ok := targetModeToString[m]; ok {
		return s
	}
	return "unknown"
}

func ParseTargetMode(s string) (TargetMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range targetModeToString {
		if name == s {
			return m, nil
		}
	}
	return Single, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// Ability is an immutable EX skill definition.
type Ability struct {
	ID         string
	Name       string
	Cost       int
	BaseDamage int
	Multiplier float64
	Target     TargetMode
	Cooldown   float64
	Priority   int
}

// Damage is the raw per-target damage before defense.
func (a *Ability) Damage() int {
	return int(math.Round(float64(a.BaseDamage) * a.Multiplier))
}

func (a *Ability) Label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

func AbilityFromDef(d config.AbilityDef) (Ability, error) {
	mode, err := ParseTargetMode(d.Target)
	if err != nil {
		return Ability{}, fmt.Errorf("ability %s: %w", d.ID, err)
	}
	return Ability{
		ID:         d.ID,
		Name:       d.Name,
		Cost:       d.Cost,
		BaseDamage: d.BaseDamage,
		Multiplier: d.Multiplier,
		Target:     mode,
		Cooldown:   d.Cooldown,
		Priority:   d.Priority,
	}, nil
}

// AbilityBook indexes ability definitions by id.
type AbilityBook struct {
	byID map[string]Ability
}

func NewAbilityBook(cfg *config.AbilitiesConfig) (*AbilityBook, error) {
	b := &AbilityBook{byID: map[string]Ability{}}
	if cfg == nil {
		return b, nil
	}
	var errs []error
	for _, d := range cfg.Abilities {
		a, err := AbilityFromDef(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		b.byID[a.ID] = a
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns a fresh copy so combatants never share a definition.
func (b *AbilityBook) Get(id string) (*Ability, bool) {
	if b == nil || id == "" {
		return nil, false
	}
	a, ok := b.byID[id]
	if !ok {
		return nil, false
	}
	return &a, true
}

func (b *AbilityBook) Len() int {
	if b == nil {
		return 0
	}
	return len(b.byID)
}
