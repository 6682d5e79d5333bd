package Clusterer

// Location is a single point of interest in a clustering request.
// Priority follows the mobile app convention: 1 = must see, 5 = optional.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Priority  int     `json:"priority"`
	StayHours float64 `json:"stay_hours" validate:"min=0"`
	PlaceID   string  `json:"place_id,omitempty"`
	ClusterID int     `json:"cluster_id"`
}

// ClusterRequest is the structure of the incoming request
type ClusterRequest struct {
	LocationsSorted []Location `json:"locations_sorted" validate:"required,min=1,dive"`
	RequestedDays   int        `json:"requested_days"`
	MaxHoursPerDay  float64    `json:"max_hours_per_day"`
}

// DayPlan is one day of an allocation solution.
type DayPlan struct {
	Day       int        `json:"day"`
	Locations []Location `json:"locations"`
}

// UserPreferenceSolution keeps the caller's ordering within the requested
// day count and reports everything that did not fit.
type UserPreferenceSolution struct {
	Days     []DayPlan  `json:"days"`
	Rejected []Location `json:"rejected"`
}

// OptimalSolution splits clusters across the minimum number of days.
type OptimalSolution struct {
	Days []DayPlan `json:"days"`
}

// ClusterResponse is the structure of the API response
type ClusterResponse struct {
	UserPreferenceSolution UserPreferenceSolution `json:"user_preference_solution"`
	OptimalSolution        OptimalSolution        `json:"optimal_solution"`
}

// CityClusterRequest is one city's worth of locations in a multi-city request.
type CityClusterRequest struct {
	ClusterRequest
	City string `json:"city" validate:"required"`
}

type MultiClusterRequest struct {
	Cities []CityClusterRequest `json:"cities" validate:"required,min=1,dive"`
}

type CityClusterResponse struct {
	City     string          `json:"city"`
	Solution ClusterResponse `json:"solution"`
}

type MultiClusterResponse struct {
	Cities []CityClusterResponse `json:"cities"`
}
