package stage

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"stagesim/internal/config"
	"stagesim/internal/grid"
)

func corridorRun(t *testing.T) (*Run, *[]Transition) {
	t.Helper()
	r := NewRun(nil)
	var seen []Transition
	r.OnTransition(func(tr Transition) { seen = append(seen, tr) })
	walk := []grid.Pos{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}
	if err := r.Initialize(5, 3, walk, grid.Pos{X: 0, Y: 1}, grid.Pos{X: 4, Y: 1}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return r, &seen
}

func TestWalkCorridorToBattle(t *testing.T) {
	r, seen := corridorRun(t)
	if r.State() != Traversing || r.Player() != (grid.Pos{X: 0, Y: 1}) {
		t.Fatalf("after init: state %s player %s", r.State(), r.Player())
	}

	err := r.Move(grid.Pos{X: 3, Y: 1})
	if !errors.Is(err, ErrNotAdjacent) {
		t.Fatalf("jump: expected ErrNotAdjacent, got %v", err)
	}
	if r.Moves() != 0 || r.Player() != (grid.Pos{X: 0, Y: 1}) {
		t.Fatal("rejected move changed the run")
	}

	for _, p := range []grid.Pos{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}} {
		if err := r.Move(p); err != nil {
			t.Fatalf("move to %s: %v", p, err)
		}
	}
	if r.State() != BattleReady || r.Player() != (grid.Pos{X: 4, Y: 1}) || r.Moves() != 4 {
		t.Fatalf("final: state %s player %s moves %d", r.State(), r.Player(), r.Moves())
	}
	want := []Transition{{NotStarted, Traversing}, {Traversing, BattleReady}}
	if !reflect.DeepEqual(*seen, want) {
		t.Fatalf("transitions = %v, want %v", *seen, want)
	}
}

func TestMoveReleasesPreviousCell(t *testing.T) {
	r, _ := corridorRun(t)
	if err := r.Move(grid.Pos{X: 1, Y: 1}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if !r.Map().Traversable(grid.Pos{X: 0, Y: 1}) {
		t.Fatal("start cell still occupied")
	}
	if r.Map().Traversable(grid.Pos{X: 1, Y: 1}) {
		t.Fatal("player cell not occupied")
	}
}

func TestMoveRejections(t *testing.T) {
	r, _ := corridorRun(t)
	tests := []struct {
		name   string
		target grid.Pos
		want   error
	}{
		{"empty cell", grid.Pos{X: 0, Y: 0}, ErrBlocked},
		{"out of bounds", grid.Pos{X: -1, Y: 1}, ErrBlocked},
		{"diagonal", grid.Pos{X: 1, Y: 0}, ErrNotAdjacent},
		{"same cell", grid.Pos{X: 0, Y: 1}, ErrNotAdjacent},
	}
	for _, tt := range tests {
		if err := r.Move(tt.target); !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
	if r.Moves() != 0 || r.State() != Traversing {
		t.Fatal("rejected moves changed the run")
	}

	fresh := NewRun(nil)
	if err := fresh.Move(grid.Pos{X: 1, Y: 0}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("move before init: %v", err)
	}
}

func TestBattleLifecycle(t *testing.T) {
	r, seen := corridorRun(t)
	if err := r.StartBattle(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("start while traversing: %v", err)
	}
	steps, ok := r.PathTo(r.BattleCell())
	if !ok {
		t.Fatalf("no path: %v", steps)
	}
	for _, p := range steps {
		if err := r.Move(p); err != nil {
			t.Fatalf("move %s: %v", p, err)
		}
	}
	if err := r.Move(grid.Pos{X: 3, Y: 1}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("move after arrival: %v", err)
	}

	if err := r.StartBattle(); err != nil {
		t.Fatalf("start battle: %v", err)
	}
	if err := r.StartBattle(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second start: %v", err)
	}
	if err := r.ClearStage(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("clear during battle: %v", err)
	}
	if err := r.CompleteBattle(false); err != nil || r.State() != InBattle {
		t.Fatalf("defeat: err %v state %s", err, r.State())
	}
	if err := r.CompleteBattle(true); err != nil || r.State() != BattleComplete {
		t.Fatalf("victory: err %v state %s", err, r.State())
	}
	if err := r.CompleteBattle(true); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second completion: %v", err)
	}
	if err := r.ClearStage(); err != nil || r.State() != Cleared {
		t.Fatalf("clear: err %v state %s", err, r.State())
	}
	if len(*seen) != 5 || (*seen)[4] != (Transition{BattleComplete, Cleared}) {
		t.Fatalf("transitions = %v", *seen)
	}
}

func TestInitializeFromDef(t *testing.T) {
	def := &config.StageDef{
		ID:       "s",
		Grid:     config.GridDef{Width: 3, Height: 1},
		Walkable: []config.Cell{{1, 0}},
		Start:    config.Cell{0, 0},
		Battle:   config.Cell{2, 0},
	}
	r := NewRun(nil)
	if err := r.InitializeFromDef(def); err != nil {
		t.Fatalf("init: %v", err)
	}
	if r.Def() != def || r.BattleCell() != (grid.Pos{X: 2, Y: 0}) || r.ID() == uuid.Nil {
		t.Fatalf("def %v battle %s id %s", r.Def(), r.BattleCell(), r.ID())
	}
	first := r.ID()
	if err := r.InitializeFromDef(def); err != nil {
		t.Fatalf("reinit: %v", err)
	}
	if r.ID() == first || r.State() != Traversing || r.Moves() != 0 {
		t.Fatal("reinit did not start a fresh run")
	}

	if err := NewRun(nil).InitializeFromDef(nil); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("nil def: %v", err)
	}
	bad := *def
	bad.Battle = config.Cell{5, 0}
	if err := NewRun(nil).InitializeFromDef(&bad); !errors.Is(err, grid.ErrOutOfBounds) {
		t.Fatalf("bad def: %v", err)
	}
}

func TestInitializeOnBattleCell(t *testing.T) {
	r := NewRun(nil)
	if err := r.Initialize(1, 1, nil, grid.Pos{}, grid.Pos{}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if r.State() != BattleReady {
		t.Fatalf("state = %s, want battle_ready", r.State())
	}
}
