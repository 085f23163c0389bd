package config

import "stagesim/internal/grid"

type StagesConfig struct {
	Stages []StageDef `yaml:"stages"`
}

// Cell is an [x, y] pair.
type Cell [2]int

func (c Cell) Pos() grid.Pos { return grid.Pos{X: c[0], Y: c[1]} }

type GridDef struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CostDef configures the shared ability resource for the stage's battle.
type CostDef struct {
	Max   int     `yaml:"max"`
	Regen float64 `yaml:"regen"`
	Start int     `yaml:"start"`
}

// RewardDef is one reward line as authored. It is not validated at load time;
// the reward engine reports malformed lines individually.
type RewardDef struct {
	Category string `yaml:"category"`
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
}

type StageDef struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Grid     GridDef     `yaml:"grid"`
	Walkable []Cell      `yaml:"walkable"`
	Start    Cell        `yaml:"start"`
	Battle   Cell        `yaml:"battle"`
	Cost     CostDef     `yaml:"cost"`
	Students []string    `yaml:"students"`
	Enemies  []string    `yaml:"enemies"`
	Rewards  []RewardDef `yaml:"rewards"`
	Note     string      `yaml:"note"`
}

// WalkablePositions converts the authored cells.
func (s *StageDef) WalkablePositions() []grid.Pos {
	out := make([]grid.Pos, len(s.Walkable))
	for i, c := range s.Walkable {
		out[i] = c.Pos()
	}
	return out
}

func (s *StagesConfig) Stage(id string) (*StageDef, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Stages {
		if s.Stages[i].ID == id {
			return &s.Stages[i], true
		}
	}
	return nil, false
}
