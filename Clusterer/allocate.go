package Clusterer

import (
	"math"
	"sort"
)

// capacityEpsilon absorbs floating point noise so a stop that exactly fills a
// day is not spuriously rejected.
const capacityEpsilon = 1e-6

// AllocateByPreference fills the requested days in the caller's original
// order. The current day keeps filling until the next location would overflow
// its budget, then the allocator advances (skipping full days); whatever is
// left once the days are exhausted is rejected. Accepted order is preserved.
func AllocateByPreference(locations []Location, requestedDays int, maxHoursPerDay float64) (days [][]Location, rejected []Location) {
	days = make([][]Location, requestedDays)
	dayHours := make([]float64, requestedDays)
	current := 0

	for _, loc := range locations {
		if current >= requestedDays {
			rejected = append(rejected, loc)
			continue
		}

		if dayHours[current]+loc.StayHours <= maxHoursPerDay+capacityEpsilon {
			days[current] = append(days[current], loc)
			dayHours[current] += loc.StayHours
			continue
		}

		// Advance until we find space or exhaust the requested days.
		for current < requestedDays && dayHours[current]+loc.StayHours > maxHoursPerDay+capacityEpsilon {
			current++
		}
		if current >= requestedDays {
			rejected = append(rejected, loc)
		} else {
			days[current] = append(days[current], loc)
			dayHours[current] += loc.StayHours
		}
	}

	return days, rejected
}

// AllocateByCluster is the capacity-balanced policy. The day count is the
// minimum needed to hold the total stay hours, independent of what the user
// asked for. Clusters are placed whole into the emptiest day when they fit;
// otherwise their members are placed individually in priority order, and
// members that fit nowhere overflow.
func AllocateByCluster(locations []Location, maxHoursPerDay float64) (days [][]Location, overflow []Location) {
	totalHours := 0.0
	for _, loc := range locations {
		totalHours += loc.StayHours
	}
	numDays := int(math.Ceil(totalHours / maxHoursPerDay))
	if numDays < 1 {
		numDays = 1
	}

	days = make([][]Location, numDays)
	dayHours := make([]float64, numDays)

	for _, cluster := range clustersByPriority(locations) {
		clusterHours := 0.0
		for _, loc := range cluster {
			clusterHours += loc.StayHours
		}

		// Try the cluster as a unit in the day with the most room.
		best := 0
		for idx := 1; idx < numDays; idx++ {
			if maxHoursPerDay-dayHours[idx] > maxHoursPerDay-dayHours[best] {
				best = idx
			}
		}
		if clusterHours <= maxHoursPerDay-dayHours[best]+capacityEpsilon {
			days[best] = append(days[best], cluster...)
			dayHours[best] += clusterHours
			continue
		}

		// Split: each member goes to whichever day currently has the most
		// remaining capacity and still fits.
		for _, loc := range cluster {
			order := make([]int, numDays)
			for i := range order {
				order[i] = i
			}
			sort.SliceStable(order, func(a, b int) bool {
				return maxHoursPerDay-dayHours[order[a]] > maxHoursPerDay-dayHours[order[b]]
			})

			placed := false
			for _, idx := range order {
				if dayHours[idx]+loc.StayHours <= maxHoursPerDay+capacityEpsilon {
					days[idx] = append(days[idx], loc)
					dayHours[idx] += loc.StayHours
					placed = true
					break
				}
			}
			if !placed {
				overflow = append(overflow, loc)
			}
		}
	}

	return days, overflow
}

// clustersByPriority groups locations by cluster id and orders the groups by
// their most important member (lowest priority value first). Members within a
// group are likewise priority sorted; ties keep input order.
func clustersByPriority(locations []Location) [][]Location {
	groups := make(map[int][]Location)
	var order []int
	for _, loc := range locations {
		if _, seen := groups[loc.ClusterID]; !seen {
			order = append(order, loc.ClusterID)
		}
		groups[loc.ClusterID] = append(groups[loc.ClusterID], loc)
	}

	clusters := make([][]Location, 0, len(order))
	for _, id := range order {
		members := groups[id]
		sort.SliceStable(members, func(a, b int) bool {
			return members[a].Priority < members[b].Priority
		})
		clusters = append(clusters, members)
	}

	sort.SliceStable(clusters, func(a, b int) bool {
		return clusters[a][0].Priority < clusters[b][0].Priority
	})

	return clusters
}

// locationKey identifies a location for rejected-set deduplication.
// Coordinates are rounded so enrichment jitter does not defeat the match.
type locationKey struct {
	lat, lon float64
	placeID  string
	priority int
}

func keyFor(loc Location) locationKey {
	return locationKey{
		lat:      math.Round(loc.Latitude*1e6) / 1e6,
		lon:      math.Round(loc.Longitude*1e6) / 1e6,
		placeID:  loc.PlaceID,
		priority: loc.Priority,
	}
}

// Solve runs clustering and both allocation policies over one request.
// Overflow from the cluster policy merges into the preference policy's
// rejected list, deduplicated.
func Solve(req ClusterRequest) ClusterResponse {
	locations := AssignClusters(req.LocationsSorted)

	prefDays, rejected := AllocateByPreference(locations, req.RequestedDays, req.MaxHoursPerDay)
	optimalDays, overflow := AllocateByCluster(locations, req.MaxHoursPerDay)

	seen := make(map[locationKey]bool)
	merged := []Location{}
	for _, loc := range append(rejected, overflow...) {
		if k := keyFor(loc); !seen[k] {
			merged = append(merged, loc)
			seen[k] = true
		}
	}

	resp := ClusterResponse{
		UserPreferenceSolution: UserPreferenceSolution{
			Rejected: merged,
		},
	}

	for idx, locs := range prefDays {
		resp.UserPreferenceSolution.Days = append(resp.UserPreferenceSolution.Days, DayPlan{
			Day:       idx + 1,
			Locations: locs,
		})
	}

	// Empty buckets are omitted; the day number keeps its bucket index.
	for idx, locs := range optimalDays {
		if len(locs) == 0 {
			continue
		}
		resp.OptimalSolution.Days = append(resp.OptimalSolution.Days, DayPlan{
			Day:       idx + 1,
			Locations: locs,
		})
	}

	return resp
}
