package Models

import "gorm.io/gorm"

// Trip is a saved multi-day itinerary owned by a user.
type Trip struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"index"`
	Name         string `json:"name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	ThumbnailURL string `json:"thumbnail_url"`

	// Relationships
	Days []DayTrip `json:"days" gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

// DayTrip is one day of a trip.
type DayTrip struct {
	gorm.Model
	TripID      uint   `json:"trip_id" gorm:"index"`
	DayNumber   int    `json:"day_number"`
	Date        string `json:"date"`
	Destination string `json:"destination"`

	Activities []Activity `json:"activities" gorm:"foreignKey:DayTripID;constraint:OnDelete:CASCADE"`
}

// Activity is a single scheduled entry within a day.
type Activity struct {
	gorm.Model
	DayTripID   uint    `json:"day_trip_id" gorm:"index"`
	Destination string  `json:"destination"`
	Type        string  `json:"type"` // Start, Lunch, Dinner, Attraction, End
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Address     string  `json:"address"`
	PlaceID     string  `json:"place_id"`
	Thumbnail   string  `json:"thumbnail"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}
