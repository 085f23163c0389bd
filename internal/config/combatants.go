package config

type RosterConfig struct {
	Students []CombatantDef `yaml:"students"`
	Enemies  []CombatantDef `yaml:"enemies"`
}

// CombatantDef describes a student (with Ability set) or an enemy (with
// AttackInterval set).
type CombatantDef struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	MaxHP          int     `yaml:"max_hp"`
	Attack         int     `yaml:"attack"`
	Defense        int     `yaml:"defense"`
	Ability        string  `yaml:"ability"`
	AttackInterval float64 `yaml:"attack_interval"`
	Note           string  `yaml:"note"`
}

// DisplayName falls back to the id.
func (d CombatantDef) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

func (r *RosterConfig) Student(id string) (CombatantDef, bool) {
	if r == nil {
		return CombatantDef{}, false
	}
	for _, s := range r.Students {
		if s.ID == id {
			return s, true
		}
	}
	return CombatantDef{}, false
}

func (r *RosterConfig) Enemy(id string) (CombatantDef, bool) {
	if r == nil {
		return CombatantDef{}, false
	}
	for _, e := range r.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return CombatantDef{}, false
}
