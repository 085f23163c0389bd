package grid

import "fmt"

type Pos struct{ X, Y int }

func (a Pos) Add(b Pos) Pos { return Pos{a.X + b.X, a.Y + b.Y} }
func (a Pos) Sub(b Pos) Pos { return Pos{a.X - b.X, a.Y - b.Y} }

func (a Pos) Manhattan(b Pos) int {
	d := a.Sub(b)
	return abs(d.X) + abs(d.Y)
}

// Adjacent reports 4-directional adjacency. A cell is not adjacent to itself.
func (a Pos) Adjacent(b Pos) bool { return a.Manhattan(b) == 1 }

func (a Pos) String() string { return fmt.Sprintf("(%d,%d)", a.X, a.Y) }

// directions in the fixed order used for neighbour scans: up, left, right, down.
var directions = [4]Pos{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
