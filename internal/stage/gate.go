package stage

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"stagesim/internal/grid"
	"stagesim/internal/logger"
)

//go:generate go tool mockgen -destination=./mocks/runner_mock.go -package=mocks . Runner

// Runner is the part of a Run the gate needs.
type Runner interface {
	Initialized() bool
	Bound() bool
	State() State
	Player() grid.Pos
	BattleCell() grid.Pos
	StartBattle() error
}

type GateFailure uint8

const (
	GateOK GateFailure = iota
	StageNotInitialized
	WrongState
	WrongPosition
	StartFailed
)

var gateFailureToString = map[GateFailure]string{
	GateOK:              "ok",
	StageNotInitialized: "stage_not_initialized",
	WrongState:          "wrong_state",
	WrongPosition:       "wrong_position",
	StartFailed:         "start_failed",
}

func (f GateFailure) String() string {
	if s, ok := gateFailureToString[f]; ok {
		return s
	}
	return "unknown"
}

func (f GateFailure) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

type GateResult struct {
	OK      bool        `json:"ok"`
	Failure GateFailure `json:"failure"`
	Message string      `json:"message"`
	State   State       `json:"state,omitempty"`
	Player  grid.Pos    `json:"player"`
	Battle  grid.Pos    `json:"battle"`
}

type GateStats struct {
	Attempts  int `json:"attempts"`
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// Gate checks that a run may start its battle.
type Gate struct {
	stats GateStats
	log   *logrus.Entry
}

func NewGate(log *logrus.Entry) *Gate {
	return &Gate{log: logger.Component(log, "gate")}
}

func (g *Gate) Stats() GateStats { return g.stats }

// Validate checks the preconditions without changing the run.
func (g *Gate) Validate(r Runner) GateResult {
	return g.record(check(r))
}

// TryEnter validates and then starts the battle.
func (g *Gate) TryEnter(r Runner) GateResult {
	res := check(r)
	if res.OK {
		if err := r.StartBattle(); err != nil {
			res.OK = false
			res.Failure = StartFailed
			res.Message = err.Error()
		} else {
			res.State = r.State()
			res.Message = "battle started"
		}
	}
	return g.record(res)
}

func check(r Runner) GateResult {
	if r == nil || !r.Initialized() {
		return GateResult{Failure: StageNotInitialized, Message: "no stage bound"}
	}
	if !r.Bound() {
		return GateResult{Failure: StageNotInitialized, Message: "stage has no definition"}
	}
	res := GateResult{State: r.State(), Player: r.Player(), Battle: r.BattleCell()}
	switch {
	case res.State != BattleReady:
		res.Failure = WrongState
		res.Message = fmt.Sprintf("state is %s, want %s", res.State, BattleReady)
	case res.Player != res.Battle:
		res.Failure = WrongPosition
		res.Message = fmt.Sprintf("player at %s, battle cell %s", res.Player, res.Battle)
	default:
		res.OK = true
		res.Message = "ready"
	}
	return res
}

func (g *Gate) record(res GateResult) GateResult {
	g.stats.Attempts++
	if res.OK {
		g.stats.Successes++
		return res
	}
	g.stats.Failures++
	g.log.WithFields(logrus.Fields{
		"failure": res.Failure.String(),
		"state":   res.State,
	}).Warn(res.Message)
	return res
}
