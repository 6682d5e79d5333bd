package TripOptimizer

import (
	"errors"
	"math"
	"sort"
)

// ErrNoSolution reports that one particular lunch/dinner assignment admits no
// feasible route. It is scoped to the attempt, not the day: the role search
// catches it and moves on to the next assignment.
var ErrNoSolution = errors.New("no solution for this role assignment")

// DropPenalty is the fixed cost of skipping one optional stop in soft mode.
// It is large enough that a route only ever drops stops it cannot fit.
const DropPenalty = 1000

// RouteModel is a single-vehicle, single-day sequencing problem: every node
// is visited once starting and ending at the depot, the cumulative time along
// the route carries no slack (no artificial waiting), is capped by Horizon,
// and must fall inside a hard window at the designated lunch and dinner nodes.
// Arc cost is travel time plus the destination's service time, so the
// cumulative time at a node doubles as its cost contribution.
type RouteModel struct {
	TravelTimes  [][]int
	ServiceTimes []int
	Depot        int
	Horizon      int

	// LunchNode/DinnerNode are -1 when the role does not apply to this day.
	// Windows are minute offsets from the start of the day.
	LunchNode    int
	DinnerNode   int
	LunchWindow  [2]int
	DinnerWindow [2]int

	// Soft mode: nodes marked droppable may be skipped at DropPenalty each.
	AllowDrops bool
	Droppable  []bool
}

// RouteResult is a feasible sequence with the cumulative arrival minute at
// each position. Order and Arrivals include the depot at both ends.
type RouteResult struct {
	Order    []int
	Arrivals []int
	Dropped  []int
	Cost     int
}

// Solve finds the cheapest feasible route by depth-first branch and bound.
// Candidates expand cheapest arc first, which finds a good incumbent early
// and lets the bound cut most of the tree. Day-sized instances (a handful of
// stops) solve exhaustively in well under a millisecond.
func (m *RouteModel) Solve() (*RouteResult, error) {
	n := len(m.TravelTimes)
	s := &solver{
		model:      m,
		visited:    make([]bool, n),
		order:      make([]int, 1, n+1),
		arrivals:   make([]int, 1, n+1),
		bestCost:   math.MaxInt,
		minInbound: make(map[int]int),
	}
	// Cheapest arc into each windowed node. The matrix is not required to be
	// metric, so a detour may reach the node cheaper than the direct arc.
	for _, node := range []int{m.LunchNode, m.DinnerNode} {
		if node < 0 {
			continue
		}
		best := math.MaxInt
		for x := range m.TravelTimes {
			if x != node && m.TravelTimes[x][node] < best {
				best = m.TravelTimes[x][node]
			}
		}
		if best == math.MaxInt {
			best = 0
		}
		s.minInbound[node] = best
	}
	s.order[0] = m.Depot
	s.arrivals[0] = 0
	s.visited[m.Depot] = true

	s.dfs(m.Depot, 0, n-1)

	if s.best == nil {
		return nil, ErrNoSolution
	}
	return s.best, nil
}

type solver struct {
	model      *RouteModel
	visited    []bool
	order      []int
	arrivals   []int
	best       *RouteResult
	bestCost   int
	minInbound map[int]int
}

func (s *solver) dfs(cur, t, remaining int) {
	m := s.model

	// Cumulative time only grows, so the current time bounds the final cost.
	if t >= s.bestCost {
		return
	}

	// A mandatory windowed node whose earliest possible arrival already
	// overshoots its window can never be placed; cut the branch. The bound
	// uses the cheapest inbound arc, which stays valid on non-metric
	// matrices where a detour beats the direct arc.
	for _, node := range []int{m.LunchNode, m.DinnerNode} {
		if node < 0 || s.visited[node] {
			continue
		}
		_, hi, _ := m.windowFor(node)
		if t+s.minInbound[node]+m.ServiceTimes[node] > hi {
			return
		}
	}

	if remaining == 0 {
		s.close(cur, t, nil)
		return
	}

	// In soft mode the route may end early, dropping every remaining stop.
	if m.AllowDrops && s.allRemainingDroppable() {
		var dropped []int
		for i, v := range s.visited {
			if !v {
				dropped = append(dropped, i)
			}
		}
		s.close(cur, t, dropped)
	}

	for _, next := range s.candidates(cur) {
		arrive := t + m.TravelTimes[cur][next] + m.ServiceTimes[next]
		if arrive > m.Horizon {
			continue
		}
		if lo, hi, windowed := m.windowFor(next); windowed {
			// No slack: arriving early cannot be fixed by waiting.
			if arrive < lo || arrive > hi {
				continue
			}
		}

		s.visited[next] = true
		s.order = append(s.order, next)
		s.arrivals = append(s.arrivals, arrive)

		s.dfs(next, arrive, remaining-1)

		s.order = s.order[:len(s.order)-1]
		s.arrivals = s.arrivals[:len(s.arrivals)-1]
		s.visited[next] = false
	}
}

// close attempts the return leg to the depot and records the route when it
// beats the incumbent.
func (s *solver) close(cur, t int, dropped []int) {
	m := s.model
	end := t + m.TravelTimes[cur][m.Depot] + m.ServiceTimes[m.Depot]
	if end > m.Horizon {
		return
	}
	cost := end + DropPenalty*len(dropped)
	if cost >= s.bestCost {
		return
	}

	order := make([]int, len(s.order)+1)
	copy(order, s.order)
	order[len(order)-1] = m.Depot

	arrivals := make([]int, len(s.arrivals)+1)
	copy(arrivals, s.arrivals)
	arrivals[len(arrivals)-1] = end

	s.best = &RouteResult{
		Order:    order,
		Arrivals: arrivals,
		Dropped:  append([]int(nil), dropped...),
		Cost:     cost,
	}
	s.bestCost = cost
}

// candidates lists unvisited nodes ordered by arc cost from cur, cheapest
// first.
func (s *solver) candidates(cur int) []int {
	m := s.model
	var nodes []int
	for i, v := range s.visited {
		if !v {
			nodes = append(nodes, i)
		}
	}
	sort.Slice(nodes, func(a, b int) bool {
		ca := m.TravelTimes[cur][nodes[a]] + m.ServiceTimes[nodes[a]]
		cb := m.TravelTimes[cur][nodes[b]] + m.ServiceTimes[nodes[b]]
		if ca != cb {
			return ca < cb
		}
		return nodes[a] < nodes[b]
	})
	return nodes
}

func (s *solver) allRemainingDroppable() bool {
	if s.model.Droppable == nil {
		return false
	}
	for i, v := range s.visited {
		if !v && !s.model.Droppable[i] {
			return false
		}
	}
	return true
}

func (m *RouteModel) windowFor(node int) (lo, hi int, ok bool) {
	switch {
	case node == m.LunchNode && m.LunchNode >= 0:
		return m.LunchWindow[0], m.LunchWindow[1], true
	case node == m.DinnerNode && m.DinnerNode >= 0:
		return m.DinnerWindow[0], m.DinnerWindow[1], true
	}
	return 0, 0, false
}
