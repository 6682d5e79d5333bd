package TripOptimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dayModel is a five stop day: hotel depot, two attractions and one candidate
// stop for each meal. The cheapest feasible tour is hotel, attraction A,
// lunch, attraction B, dinner, hotel.
func dayModel() *RouteModel {
	return &RouteModel{
		TravelTimes: [][]int{
			{0, 60, 100, 200, 60},
			{60, 0, 40, 150, 200},
			{100, 40, 0, 120, 150},
			{200, 150, 120, 0, 90},
			{60, 200, 150, 90, 0},
		},
		ServiceTimes: []int{0, 30, 60, 60, 30},
		Depot:        0,
		Horizon:      720,
		LunchNode:    2,
		DinnerNode:   4,
		LunchWindow:  [2]int{120, 240},
		DinnerWindow: [2]int{480, 600},
	}
}

func TestSolveFindsCheapestWindowedRoute(t *testing.T) {
	result, err := dayModel().Solve()
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 0}, result.Order)
	assert.Equal(t, []int{0, 90, 190, 370, 490, 550}, result.Arrivals)
	assert.Equal(t, 550, result.Cost)
	assert.Empty(t, result.Dropped)
}

func TestSolveArrivalsAreCumulative(t *testing.T) {
	m := dayModel()
	result, err := m.Solve()
	require.NoError(t, err)

	for pos := 1; pos < len(result.Order); pos++ {
		prev, cur := result.Order[pos-1], result.Order[pos]
		expected := result.Arrivals[pos-1] + m.TravelTimes[prev][cur] + m.ServiceTimes[cur]
		assert.Equal(t, expected, result.Arrivals[pos], "arrival at position %d", pos)
	}
}

func TestSolveMealArrivalsInsideWindows(t *testing.T) {
	m := dayModel()
	result, err := m.Solve()
	require.NoError(t, err)

	for pos, node := range result.Order {
		if lo, hi, windowed := m.windowFor(node); windowed {
			assert.GreaterOrEqual(t, result.Arrivals[pos], lo)
			assert.LessOrEqual(t, result.Arrivals[pos], hi)
		}
	}
}

func TestSolveNonMetricMatrixReachesWindow(t *testing.T) {
	// The direct arc to the lunch node costs 100 but the detour through node 1
	// arrives at minute 30, inside the window. The window cut must not treat
	// the direct arc as a lower bound on arrival.
	m := &RouteModel{
		TravelTimes: [][]int{
			{0, 10, 100},
			{10, 0, 10},
			{100, 10, 0},
		},
		ServiceTimes: []int{0, 0, 10},
		Depot:        0,
		Horizon:      200,
		LunchNode:    2,
		DinnerNode:   -1,
		LunchWindow:  [2]int{20, 30},
	}

	result, err := m.Solve()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 0}, result.Order)
	assert.Equal(t, 30, result.Arrivals[2])
}

func TestSolveRespectsHorizon(t *testing.T) {
	m := dayModel()
	m.Horizon = 500 // cheapest feasible tour ends at 550

	_, err := m.Solve()
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveEarlyArrivalIsInfeasible(t *testing.T) {
	// Every path reaches the lunch node before its window opens. There is no
	// waiting, so the model has no solution.
	m := &RouteModel{
		TravelTimes: [][]int{
			{0, 20, 10},
			{20, 0, 10},
			{10, 10, 0},
		},
		ServiceTimes: []int{0, 30, 20},
		Depot:        0,
		Horizon:      1000,
		LunchNode:    2,
		DinnerNode:   -1,
		LunchWindow:  [2]int{100, 120},
	}

	_, err := m.Solve()
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveWithoutMealNodes(t *testing.T) {
	m := &RouteModel{
		TravelTimes: [][]int{
			{0, 10, 30},
			{10, 0, 10},
			{30, 10, 0},
		},
		ServiceTimes: []int{0, 20, 20},
		Depot:        0,
		Horizon:      200,
		LunchNode:    -1,
		DinnerNode:   -1,
	}

	result, err := m.Solve()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 0}, result.Order)
	assert.Equal(t, 90, result.Cost)
}

func TestSolveDropsUnreachableOptionalStop(t *testing.T) {
	// The far stop cannot fit the horizon. In hard mode the day fails; in
	// soft mode the stop is dropped at a penalty and the rest still routes.
	m := &RouteModel{
		TravelTimes: [][]int{
			{0, 30, 300},
			{30, 0, 300},
			{300, 300, 0},
		},
		ServiceTimes: []int{0, 30, 60},
		Depot:        0,
		Horizon:      200,
		LunchNode:    -1,
		DinnerNode:   -1,
	}

	_, err := m.Solve()
	assert.ErrorIs(t, err, ErrNoSolution)

	m.AllowDrops = true
	m.Droppable = []bool{false, false, true}

	result, err := m.Solve()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, result.Order)
	assert.Equal(t, []int{2}, result.Dropped)
	assert.Equal(t, 90+DropPenalty, result.Cost)
}

func TestSolveNeverDropsMandatoryStops(t *testing.T) {
	m := dayModel()
	m.AllowDrops = true
	m.Droppable = []bool{false, true, false, true, false}

	result, err := m.Solve()
	require.NoError(t, err)

	// Everything fits, so dropping would only add penalty cost.
	assert.Empty(t, result.Dropped)
	assert.Len(t, result.Order, 6)
}
