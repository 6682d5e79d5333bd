package TripOptimizer

// Stop is one visitable point in a day's routing request. Exactly one stop
// must be flagged as the depot (the day's fixed start and end location).
type Stop struct {
	ID              string  `json:"id"`
	Latitude        float64 `json:"lat"`
	Longitude       float64 `json:"lng"`
	Priority        int     `json:"priority"`
	DurationMinutes int     `json:"duration_minutes" validate:"min=0"`
	IsDepot         bool    `json:"is_depot"`
	MealEligible    bool    `json:"meal_eligible"`
}

// DayWindow bounds the day in whole hours (e.g. 9 to 21).
type DayWindow struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// MealWindow is the hard time window for a meal role, in whole hours.
type MealWindow struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// MealWindows carries the optional lunch and dinner windows. A nil window
// means the role does not apply to this day at all.
type MealWindows struct {
	Lunch  *MealWindow `json:"lunch"`
	Dinner *MealWindow `json:"dinner"`
}

// FreeSpaceDefaults configures the synthetic free-time stops inserted when a
// day has too few meal-eligible stops to fill its meal roles.
type FreeSpaceDefaults struct {
	TravelMinutes  int `json:"travel_minutes"`
	ServiceMinutes int `json:"service_minutes"`
}

// RouteRequest is the structure of the incoming request
type RouteRequest struct {
	Stops             []Stop            `json:"stops" validate:"required,min=1,dive"`
	DayWindow         DayWindow         `json:"day_window"`
	MealWindows       MealWindows       `json:"meal_windows"`
	TravelTimeMatrix  [][]int           `json:"travel_time_matrix" validate:"required"`
	FreeSpaceDefaults FreeSpaceDefaults `json:"free_space_defaults"`
	// AllowDrops enables the soft mode: optional stops may be skipped at a
	// penalty instead of failing the whole day. Off by default.
	AllowDrops bool `json:"allow_drops"`
}

// RouteStopOut is one entry of the produced route.
type RouteStopOut struct {
	NodeID         string `json:"node_id"`
	ArrivalTime    string `json:"arrival_time"`
	ServiceMinutes int    `json:"service_minutes"`
	Role           string `json:"role"` // Start, Lunch, Dinner, Attraction, End
}

// RouteResponse is the structure of the API response
type RouteResponse struct {
	Route   []RouteStopOut `json:"route"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
}

// Route entry roles.
const (
	RoleStart      = "Start"
	RoleLunch      = "Lunch"
	RoleDinner     = "Dinner"
	RoleAttraction = "Attraction"
	RoleEnd        = "End"
)
