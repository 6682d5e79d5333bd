package Gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"Wander/Clusterer"
)

// LLMLocation is one attraction as the model returns it.
type LLMLocation struct {
	Name                string  `json:"name"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	SuggestedVisitHours float64 `json:"suggested_visit_hours"`
	Priority            int     `json:"priority"`
}

// DayCluster is a group of same-cluster attractions scheduled for one day.
type DayCluster struct {
	Cluster   int           `json:"cluster"`
	Locations []LLMLocation `json:"locations"`
}

// ItineraryResponse is the structure of the API response
type ItineraryResponse struct {
	Solution string         `json:"solution"`
	Days     [][]DayCluster `json:"days"`
}

func buildPrompt(stayDays, maxHoursPerDay int) string {
	return fmt.Sprintf(`
Suggest tourist attractions in Singapore that a visitor can explore in %d days.
Return strictly a JSON array where each entry includes:

{
  "name": "Gardens by the Bay",
  "latitude": 1.2827,
  "longitude": 103.865,
  "suggested_visit_hours": 2,
  "priority": 1
}

Requirements:
- Include enough attractions to fill %d days of sightseeing, assuming %d hours per day.
- Latitude and longitude must be decimal numbers.
- suggested_visit_hours must be a number (hours spent at the attraction).
- Priority: 1 = must see, 5 = optional.
- Return only valid JSON. Do not include extra text or comments.
`, stayDays, stayDays, maxHoursPerDay)
}

// truncatedEntry matches a trailing, unterminated object so a reply cut off
// mid-array can still be salvaged.
var truncatedEntry = regexp.MustCompile(`,\s*\{[^{}]*$`)

// ExtractLocations pulls the JSON array out of a model reply. Models wrap the
// array in prose or code fences often enough that we slice from the first
// '[' to the last ']' and, if that still fails, drop a truncated final entry.
func ExtractLocations(reply string) ([]LLMLocation, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model output")
	}
	raw := reply[start : end+1]

	var locations []LLMLocation
	if err := json.Unmarshal([]byte(raw), &locations); err == nil {
		return locations, nil
	}

	repaired := truncatedEntry.ReplaceAllString(raw[:len(raw)-1], "") + "]"
	if err := json.Unmarshal([]byte(repaired), &locations); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from LLM output: %w", err)
	}
	return locations, nil
}

// GenerateItinerary asks the model for attractions and arranges them into
// days: priority-ordered first fit under the hour budget, then grouped by
// spatial cluster within each day, most important cluster first.
func GenerateItinerary(ctx context.Context, dispenser *KeyDispenser, stayDays, maxHoursPerDay int) (*ItineraryResponse, error) {
	reply, err := generateText(ctx, dispenser, buildPrompt(stayDays, maxHoursPerDay))
	if err != nil {
		return nil, err
	}

	attractions, err := ExtractLocations(reply)
	if err != nil {
		return nil, err
	}

	return ArrangeItinerary(attractions, stayDays, maxHoursPerDay), nil
}

// ArrangeItinerary is the deterministic half of itinerary generation, split
// out so it can be exercised without a live model.
func ArrangeItinerary(attractions []LLMLocation, stayDays, maxHoursPerDay int) *ItineraryResponse {
	if stayDays < 1 {
		stayDays = 1
	}

	clusterInput := make([]Clusterer.Location, len(attractions))
	for i, a := range attractions {
		clusterInput[i] = Clusterer.Location{
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
			Priority:  a.Priority,
			StayHours: a.SuggestedVisitHours,
		}
	}
	clustered := Clusterer.AssignClusters(clusterInput)

	type entry struct {
		loc     LLMLocation
		cluster int
	}
	entries := make([]entry, len(attractions))
	for i := range attractions {
		entries[i] = entry{loc: attractions[i], cluster: clustered[i].ClusterID}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].loc.Priority < entries[b].loc.Priority
	})

	// First fit by priority: each attraction lands in the first day with room.
	dayEntries := make([][]entry, stayDays)
	dayHours := make([]float64, stayDays)
	for _, e := range entries {
		for d := 0; d < stayDays; d++ {
			if dayHours[d]+e.loc.SuggestedVisitHours <= float64(maxHoursPerDay) {
				dayEntries[d] = append(dayEntries[d], e)
				dayHours[d] += e.loc.SuggestedVisitHours
				break
			}
		}
	}

	days := make([][]DayCluster, stayDays)
	for d, dayList := range dayEntries {
		groups := make(map[int][]LLMLocation)
		var order []int
		for _, e := range dayList {
			if _, seen := groups[e.cluster]; !seen {
				order = append(order, e.cluster)
			}
			groups[e.cluster] = append(groups[e.cluster], e.loc)
		}

		clusters := make([]DayCluster, 0, len(order))
		for _, id := range order {
			locs := groups[id]
			sort.SliceStable(locs, func(a, b int) bool { return locs[a].Priority < locs[b].Priority })
			clusters = append(clusters, DayCluster{Cluster: id, Locations: locs})
		}
		sort.SliceStable(clusters, func(a, b int) bool {
			return clusters[a].Locations[0].Priority < clusters[b].Locations[0].Priority
		})

		days[d] = clusters
	}

	return &ItineraryResponse{Solution: "solution1", Days: days}
}
