package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	StagesFile    = "stages.yaml"
	AbilitiesFile = "abilities.yaml"
	RosterFile    = "roster.yaml"
)

// Bundle is everything a run needs from the config dir.
type Bundle struct {
	Stages    *StagesConfig
	Abilities *AbilitiesConfig
	Roster    *RosterConfig
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadAll reads stages, abilities and roster from dir and validates the
// references between them.
func LoadAll(dir string) (*Bundle, error) {
	var sc StagesConfig
	var ac AbilitiesConfig
	var rc RosterConfig
	if err := loadYAML(filepath.Join(dir, StagesFile), &sc); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, AbilitiesFile), &ac); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, RosterFile), &rc); err != nil {
		return nil, err
	}
	b := &Bundle{Stages: &sc, Abilities: &ac, Roster: &rc}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (a *AbilitiesConfig) Ability(id string) (AbilityDef, bool) {
	if a == nil {
		return AbilityDef{}, false
	}
	for _, ab := range a.Abilities {
		if ab.ID == id {
			return ab, true
		}
	}
	return AbilityDef{}, false
}
