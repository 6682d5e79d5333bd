package Clusterer

import "math"

// ClusterRadius is the neighborhood radius in coordinate degrees. Roughly
// 2.5 km at the equator, which matches walking distance between attractions.
const ClusterRadius = 0.0225

// AssignClusters labels every location with a cluster id. Two locations share
// a cluster when a chain of locations connects them, each consecutive pair
// within ClusterRadius; the endpoints themselves may be farther apart than
// the radius. With a minimum membership of one this is exactly the connected
// components of the within-radius graph, so it is implemented as a union-find
// over all close pairs instead of a full density scan.
//
// Cluster ids are assigned in order of first appearance. The input slice is
// modified in place and returned.
func AssignClusters(locations []Location) []Location {
	n := len(locations)
	if n == 0 {
		return locations
	}
	if n == 1 {
		locations[0].ClusterID = 0
		return locations
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if coordDistance(locations[i], locations[j]) <= ClusterRadius {
				union(i, j)
			}
		}
	}

	// Normalize roots to dense ids in first-seen order.
	ids := make(map[int]int)
	next := 0
	for i := range locations {
		root := find(i)
		id, ok := ids[root]
		if !ok {
			id = next
			ids[root] = id
			next++
		}
		locations[i].ClusterID = id
	}

	return locations
}

// coordDistance is the Euclidean distance in raw degrees. Good enough at city
// scale; no haversine needed.
func coordDistance(a, b Location) float64 {
	dLat := a.Latitude - b.Latitude
	dLon := a.Longitude - b.Longitude
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
