package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfBounds = errors.New("cell out of bounds")
	ErrBadSize     = errors.New("grid dimensions must be positive")
)

type CellKind uint8

const (
	Empty CellKind = iota
	Walkable
	Start
	Battle
)

var cellKindToString = map[CellKind]string{
	Empty:    "empty",
	Walkable: "walkable",
	Start:    "start",
	Battle:   "battle",
}

func (k CellKind) String() string {
	if s, ok := cellKindToString[k]; ok {
		return s
	}
	return "unknown"
}

// ParseCellKind is case-insensitive; unknown names map to Empty.
func ParseCellKind(s string) CellKind {
	s = strings.ToLower(s)
	for k, name := range cellKindToString {
		if name == s {
			return k
		}
	}
	return Empty
}

type Cell struct {
	Pos      Pos
	Kind     CellKind
	Occupied bool
}

// Traversable: not Empty and not occupied.
func (c Cell) Traversable() bool {
	return c.Kind != Empty && !c.Occupied
}

// Map is a static walkability grid with per-cell occupancy.
type Map struct {
	width, height int
	cells         []Cell
	start, battle Pos
}

// New builds a width x height map. Every listed walkable cell, plus start and
// battle, must lie inside the bounds.
func New(width, height int, walkable []Pos, start, battle Pos) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	m := &Map{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		start:  start,
		battle: battle,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.cells[m.index(Pos{x, y})] = Cell{Pos: Pos{x, y}}
		}
	}
	for _, p := range walkable {
		if !m.InBounds(p) {
			return nil, fmt.Errorf("walkable %s: %w", p, ErrOutOfBounds)
		}
		m.cells[m.index(p)].Kind = Walkable
	}
	if !m.InBounds(start) {
		return nil, fmt.Errorf("start %s: %w", start, ErrOutOfBounds)
	}
	if !m.InBounds(battle) {
		return nil, fmt.Errorf("battle %s: %w", battle, ErrOutOfBounds)
	}
	m.cells[m.index(start)].Kind = Start
	m.cells[m.index(battle)].Kind = Battle
	return m, nil
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }
func (m *Map) Start() Pos  { return m.start }
func (m *Map) Battle() Pos { return m.battle }

func (m *Map) index(p Pos) int { return p.Y*m.width + p.X }

func (m *Map) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// Cell returns the cell at p; ok is false outside the bounds.
func (m *Map) Cell(p Pos) (Cell, bool) {
	if !m.InBounds(p) {
		return Cell{}, false
	}
	return m.cells[m.index(p)], true
}

func (m *Map) Traversable(p Pos) bool {
	c, ok := m.Cell(p)
	return ok && c.Traversable()
}

func (m *Map) Occupy(p Pos) error {
	if !m.InBounds(p) {
		return fmt.Errorf("occupy %s: %w", p, ErrOutOfBounds)
	}
	m.cells[m.index(p)].Occupied = true
	return nil
}

func (m *Map) Release(p Pos) {
	if m.InBounds(p) {
		m.cells[m.index(p)].Occupied = false
	}
}

// Neighbors returns the in-bounds 4-neighbours of p in scan order.
func (m *Map) Neighbors(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	for _, d := range directions {
		np := p.Add(d)
		if m.InBounds(np) {
			out = append(out, np)
		}
	}
	return out
}

// String draws the map, one row per line: '.' empty, '#' walkable,
// 'S' start, 'B' battle, '@' occupied.
func (m *Map) String() string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := m.cells[m.index(Pos{x, y})]
			switch {
			case c.Occupied:
				sb.WriteByte('@')
			case c.Kind == Walkable:
				sb.WriteByte('#')
			case c.Kind == Start:
				sb.WriteByte('S')
			case c.Kind == Battle:
				sb.WriteByte('B')
			default:
				sb.WriteByte('.')
			}
		}
		if y < m.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
