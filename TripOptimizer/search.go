package TripOptimizer

import "errors"

// ErrInfeasibleDay reports that every lunch/dinner assignment was tried and
// none produced a feasible route. It is scoped to the affected day; other
// days of the same trip may still succeed.
var ErrInfeasibleDay = errors.New("no solution found")

// SearchState is the position of the role search: indexes into the eligible
// node list for each meal role, plus whether the pair is currently swapped.
type SearchState struct {
	LunchPtr  int
	DinnerPtr int
	Flipped   bool
}

// SearchMealAssignments drives the solver over alternate "which eligible stop
// hosts which meal" assignments. The obvious pick (first eligible = lunch,
// second = dinner) is often infeasible given the travel times, so on failure
// the search walks the assignments deterministically:
//
//  1. try (lunch, dinner) as pointed to
//  2. on failure, swap the two roles once
//  3. swapped pair failed too: restore orientation and advance the dinner
//     pointer if it can advance
//  4. otherwise advance the lunch pointer and restart dinner just past it
//  5. nothing left to advance: the day is infeasible
//
// This visits every unordered pair of eligible nodes in both orientations
// before giving up, O(k²) attempts for k eligible nodes. The explicit loop
// keeps the stack flat and makes the termination argument obvious.
//
// solve runs one attempt and returns ErrNoSolution when that particular
// assignment is infeasible; any other error aborts the search.
func SearchMealAssignments(eligible []int, solve func(lunch, dinner int) (*RouteResult, error)) (*RouteResult, SearchState, error) {
	state := SearchState{LunchPtr: 0, DinnerPtr: 1}

	for {
		res, err := solve(eligible[state.LunchPtr], eligible[state.DinnerPtr])
		if err == nil {
			return res, state, nil
		}
		if !errors.Is(err, ErrNoSolution) {
			return nil, state, err
		}

		if !state.Flipped {
			state.LunchPtr, state.DinnerPtr = state.DinnerPtr, state.LunchPtr
			state.Flipped = true
			continue
		}

		// Restore the original orientation before advancing.
		state.LunchPtr, state.DinnerPtr = state.DinnerPtr, state.LunchPtr
		state.Flipped = false

		if state.DinnerPtr+1 < len(eligible) {
			state.DinnerPtr++
			continue
		}
		if state.LunchPtr+1 < len(eligible)-1 {
			state.DinnerPtr = state.LunchPtr + 2
			state.LunchPtr++
			continue
		}
		return nil, state, ErrInfeasibleDay
	}
}

// SearchSingleRole handles days where only one meal role applies: each
// eligible node is tried for that role in order.
func SearchSingleRole(eligible []int, solve func(node int) (*RouteResult, error)) (*RouteResult, int, error) {
	for ptr, node := range eligible {
		res, err := solve(node)
		if err == nil {
			return res, ptr, nil
		}
		if !errors.Is(err, ErrNoSolution) {
			return nil, ptr, err
		}
	}
	return nil, len(eligible) - 1, ErrInfeasibleDay
}
