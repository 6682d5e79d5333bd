package TripOptimizer

import "fmt"

// ActiveRoles decides which meal roles a day can structurally host. Lunch is
// skipped when the day starts at or after the lunch window closes. Dinner is
// skipped when even serving every stop back to back cannot reach the dinner
// window and the day is over before dinner starts; a short afternoon simply
// has no dinner.
func ActiveRoles(day DayWindow, meals MealWindows, totalServiceMinutes int) (lunch, dinner bool) {
	lunch = meals.Lunch != nil
	dinner = meals.Dinner != nil

	if lunch && day.StartHour >= meals.Lunch.EndHour {
		lunch = false
	}
	if dinner {
		dinnerStartOffset := (meals.Dinner.StartHour - day.StartHour) * 60
		if totalServiceMinutes < dinnerStartOffset && day.EndHour <= meals.Dinner.StartHour {
			dinner = false
		}
	}
	return lunch, dinner
}

// AugmentStops appends synthetic free-time stops until the day has at least
// required meal-eligible stops, so the role search always has candidates.
// Placeholders sit a fixed travel distance from every real node and carry a
// fixed service duration; the travel matrix is extended symmetrically.
func AugmentStops(stops []Stop, matrix [][]int, required int, defaults FreeSpaceDefaults) ([]Stop, [][]int) {
	eligible := 0
	for _, s := range stops {
		if s.MealEligible && !s.IsDepot {
			eligible++
		}
	}
	missing := required - eligible
	if missing <= 0 {
		return stops, matrix
	}

	n := len(stops)
	total := n + missing

	grown := make([][]int, total)
	for i := 0; i < total; i++ {
		grown[i] = make([]int, total)
		for j := 0; j < total; j++ {
			switch {
			case i < n && j < n:
				grown[i][j] = matrix[i][j]
			case i == j:
				grown[i][j] = 0
			default:
				grown[i][j] = defaults.TravelMinutes
			}
		}
	}

	for k := 0; k < missing; k++ {
		stops = append(stops, Stop{
			ID:              fmt.Sprintf("free_time_%d", k+1),
			DurationMinutes: defaults.ServiceMinutes,
			MealEligible:    true,
		})
	}

	return stops, grown
}
