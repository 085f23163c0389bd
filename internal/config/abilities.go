package config

type AbilitiesConfig struct {
	Abilities []AbilityDef `yaml:"abilities"`
}

// AbilityDef is one EX skill. Target is "single", "multiple" or "area".
type AbilityDef struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Cost       int     `yaml:"cost"`
	BaseDamage int     `yaml:"base_damage"`
	Multiplier float64 `yaml:"multiplier"`
	Target     string  `yaml:"target"`
	Cooldown   float64 `yaml:"cooldown"`
	Priority   int     `yaml:"priority"`
	Note       string  `yaml:"note"`
}
