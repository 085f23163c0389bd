// Package stage drives a run across the grid to its battle cell and through
// the battle to a cleared stage.
package stage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"stagesim/internal/config"
	"stagesim/internal/grid"
	"stagesim/internal/logger"
	"stagesim/internal/notify"
)

var (
	ErrInvalidTransition = errors.New("invalid stage transition")
	ErrNotAdjacent       = errors.New("target not adjacent")
	ErrBlocked           = errors.New("target not traversable")
	ErrNotInitialized    = errors.New("stage not initialized")
)

type State string

const (
	NotStarted     State = "not_started"
	Traversing     State = "traversing"
	BattleReady    State = "battle_ready"
	InBattle       State = "in_battle"
	BattleComplete State = "battle_complete"
	Cleared        State = "cleared"
)

const (
	evBegin  = "begin"
	evArrive = "arrive"
	evEngage = "engage"
	evWin    = "win"
	evClear  = "clear"
)

// Transition is published on every state change.
type Transition struct {
	From State `json:"from"`
	To   State `json:"to"`
}

// Run is one attempt at a stage. Every mutation goes through a validated
// call; rejected calls leave the run untouched.
type Run struct {
	id      uuid.UUID
	grid    *grid.Map
	def     *config.StageDef
	player  grid.Pos
	moves   int
	state   State
	machine *fsm.FSM

	transitions notify.Hub[Transition]
	log         *logrus.Entry
}

func NewRun(log *logrus.Entry) *Run {
	r := &Run{log: logger.Component(log, "stage")}
	r.machine = r.newMachine()
	return r
}

func (r *Run) newMachine() *fsm.FSM {
	r.state = NotStarted
	return fsm.NewFSM(
		string(NotStarted),
		fsm.Events{
			{Name: evBegin, Src: []string{string(NotStarted)}, Dst: string(Traversing)},
			{Name: evArrive, Src: []string{string(Traversing)}, Dst: string(BattleReady)},
			{Name: evEngage, Src: []string{string(BattleReady)}, Dst: string(InBattle)},
			{Name: evWin, Src: []string{string(InBattle)}, Dst: string(BattleComplete)},
			{Name: evClear, Src: []string{string(BattleComplete)}, Dst: string(Cleared)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				t := Transition{From: State(e.Src), To: State(e.Dst)}
				r.state = t.To
				r.log.WithFields(logrus.Fields{"run": r.id.String(), "from": t.From, "to": t.To}).Debug("stage transition")
				r.transitions.Publish(t)
			},
		},
	)
}

// OnTransition registers fn for every state change.
func (r *Run) OnTransition(fn func(Transition)) { r.transitions.Subscribe(fn) }

// Initialize builds the grid, places the player on start and begins
// traversal. Calling it again starts a fresh run with a new id.
func (r *Run) Initialize(width, height int, walkable []grid.Pos, start, battle grid.Pos) error {
	m, err := grid.New(width, height, walkable, start, battle)
	if err != nil {
		return fmt.Errorf("initialize stage: %w", err)
	}
	if err := m.Occupy(start); err != nil {
		return fmt.Errorf("initialize stage: %w", err)
	}
	r.id = uuid.New()
	r.grid = m
	r.def = nil
	r.player = start
	r.moves = 0
	r.machine = r.newMachine()
	if err := r.fire(evBegin); err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{
		"run":    r.id.String(),
		"size":   fmt.Sprintf("%dx%d", width, height),
		"start":  start.String(),
		"battle": battle.String(),
	}).Info("stage initialized")
	if start == battle {
		return r.fire(evArrive)
	}
	return nil
}

// InitializeFromDef initializes from a stage definition and binds it.
func (r *Run) InitializeFromDef(def *config.StageDef) error {
	if def == nil {
		return ErrNotInitialized
	}
	if err := r.Initialize(def.Grid.Width, def.Grid.Height, def.WalkablePositions(), def.Start.Pos(), def.Battle.Pos()); err != nil {
		return fmt.Errorf("stage %s: %w", def.ID, err)
	}
	r.def = def
	return nil
}

func (r *Run) ID() uuid.UUID         { return r.id }
func (r *Run) State() State          { return r.state }
func (r *Run) Player() grid.Pos      { return r.player }
func (r *Run) Moves() int            { return r.moves }
func (r *Run) Map() *grid.Map        { return r.grid }
func (r *Run) Def() *config.StageDef { return r.def }
func (r *Run) Initialized() bool     { return r != nil && r.grid != nil }

// Bound reports whether a stage definition is attached.
func (r *Run) Bound() bool { return r != nil && r.def != nil }

// BattleCell is the zero position before Initialize.
func (r *Run) BattleCell() grid.Pos {
	if r.grid == nil {
		return grid.Pos{}
	}
	return r.grid.Battle()
}

// Move steps the player to an adjacent traversable cell. Reaching the battle
// cell makes the run battle-ready.
func (r *Run) Move(target grid.Pos) error {
	if err := r.checkMove(target); err != nil {
		r.log.WithFields(logrus.Fields{
			"run":    r.id.String(),
			"from":   r.player.String(),
			"target": target.String(),
		}).WithError(err).Debug("move rejected")
		return err
	}
	if err := r.grid.Occupy(target); err != nil {
		return err
	}
	r.grid.Release(r.player)
	r.player = target
	r.moves++
	if target == r.grid.Battle() {
		return r.fire(evArrive)
	}
	return nil
}

func (r *Run) checkMove(target grid.Pos) error {
	if r.state != Traversing {
		return fmt.Errorf("%w: move while %s", ErrInvalidTransition, r.state)
	}
	if !r.player.Adjacent(target) {
		return fmt.Errorf("%w: %s -> %s", ErrNotAdjacent, r.player, target)
	}
	if !r.grid.Traversable(target) {
		return fmt.Errorf("%w: %s", ErrBlocked, target)
	}
	return nil
}

// PathTo suggests steps from the player to `to` with the greedy heuristic.
func (r *Run) PathTo(to grid.Pos) ([]grid.Pos, bool) {
	if r.grid == nil {
		return nil, false
	}
	// The player's own cell is occupied; the walk starts from it regardless.
	return r.grid.GreedyPath(r.player, to)
}

func (r *Run) StartBattle() error { return r.fire(evEngage) }

// CompleteBattle records the result. Defeat leaves the run in battle for the
// caller to handle.
func (r *Run) CompleteBattle(victory bool) error {
	if r.state != InBattle {
		return r.reject(evWin, nil)
	}
	if !victory {
		r.log.WithField("run", r.id.String()).Info("battle lost")
		return nil
	}
	return r.fire(evWin)
}

func (r *Run) ClearStage() error { return r.fire(evClear) }

func (r *Run) fire(event string) error {
	if err := r.machine.Event(context.Background(), event); err != nil {
		return r.reject(event, err)
	}
	return nil
}

func (r *Run) reject(event string, cause error) error {
	r.log.WithFields(logrus.Fields{
		"run":   r.id.String(),
		"event": event,
		"state": r.state,
	}).Warn("rejected stage transition")
	if cause == nil {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, r.state)
	}
	return fmt.Errorf("%w: %s from %s: %w", ErrInvalidTransition, event, r.state, cause)
}
