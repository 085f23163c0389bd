package grid

// MaxPathSteps bounds GreedyPath so unreachable goals terminate.
const MaxPathSteps = 256

// GreedyPath walks from `from` toward `to`, each step taking the unvisited
// traversable neighbour with the smallest Manhattan distance to the goal
// (ties broken by scan order). It is a heuristic for hand-authored layouts:
// it can dead-end on non-convex obstacles even when a route exists.
//
// The returned steps exclude `from`. reached reports whether the last step
// is `to`; on failure the partial walk is returned.
func (m *Map) GreedyPath(from, to Pos) (steps []Pos, reached bool) {
	if from == to {
		return nil, true
	}
	if !m.InBounds(from) || !m.InBounds(to) {
		return nil, false
	}

	visited := map[Pos]bool{from: true}
	cur := from
	for i := 0; i < MaxPathSteps; i++ {
		var (
			best     Pos
			bestDist int
			found    bool
		)
		for _, np := range m.Neighbors(cur) {
			if visited[np] || !m.Traversable(np) {
				continue
			}
			d := np.Manhattan(to)
			if !found || d < bestDist {
				best, bestDist, found = np, d, true
			}
		}
		if !found {
			return steps, false
		}
		visited[best] = true
		steps = append(steps, best)
		cur = best
		if cur == to {
			return steps, true
		}
	}
	return steps, false
}
