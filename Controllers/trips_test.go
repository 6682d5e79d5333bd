package Controllers

import (
	"encoding/json"
	"fmt"
	"testing"

	"Wander/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripsApp() *fiber.App {
	app := fiber.New()
	controller := NewTripController(Models.DB)
	app.Get("/api/trips/recommended", controller.GetRecommendedTrips)
	app.Get("/api/trips/user/:user_id", controller.GetUserTrips)
	app.Get("/api/trips/:id", controller.GetTrip)
	app.Post("/api/trips", controller.CreateTrip)
	app.Post("/api/trips/full", controller.CreateFullTrip)
	app.Post("/api/trips/:id/days", controller.CreateDay)
	app.Post("/api/trips/days/:day_id/activities", controller.CreateActivity)
	app.Put("/api/trips/activities/:activity_id", controller.UpdateActivity)
	app.Delete("/api/trips/activities/:activity_id", controller.DeleteActivity)
	app.Delete("/api/trips/days/:day_id", controller.DeleteDay)
	app.Delete("/api/trips/:id", controller.DeleteTrip)
	return app
}

func fullTripPayload() Models.Trip {
	return Models.Trip{
		UserID:    1,
		Name:      "Singapore Getaway",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-03",
		Days: []Models.DayTrip{
			{
				DayNumber:   1,
				Date:        "2026-09-01",
				Destination: "Marina Bay",
				Activities: []Models.Activity{
					{Destination: "Gardens by the Bay", Type: "Attraction", StartTime: "09:00", EndTime: "11:00", Lat: 1.2816, Lng: 103.8636},
					{Destination: "Satay by the Bay", Type: "Lunch", StartTime: "12:00", EndTime: "13:00"},
				},
			},
			{
				DayNumber:   2,
				Date:        "2026-09-02",
				Destination: "Sentosa",
				Activities: []Models.Activity{
					{Destination: "Siloso Beach", Type: "Attraction", StartTime: "10:00", EndTime: "14:00"},
				},
			},
		},
	}
}

func TestCreateFullTripAndGet(t *testing.T) {
	setupTestDB(t)
	app := tripsApp()

	status, body := request(t, app, "POST", "/api/trips/full", fullTripPayload())
	require.Equal(t, fiber.StatusCreated, status, string(body))

	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	tripID := int(created["trip_id"].(float64))
	require.NotZero(t, tripID)

	status, body = request(t, app, "GET", fmt.Sprintf("/api/trips/%d", tripID), nil)
	require.Equal(t, fiber.StatusOK, status)

	var trip Models.Trip
	require.NoError(t, json.Unmarshal(body, &trip))
	assert.Equal(t, "Singapore Getaway", trip.Name)
	require.Len(t, trip.Days, 2)
	assert.Equal(t, 1, trip.Days[0].DayNumber)
	assert.Len(t, trip.Days[0].Activities, 2)
	assert.Equal(t, "Lunch", trip.Days[0].Activities[1].Type)
}

func TestGetTripNotFound(t *testing.T) {
	setupTestDB(t)

	status, _ := request(t, tripsApp(), "GET", "/api/trips/999", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGetUserTrips(t *testing.T) {
	setupTestDB(t)
	app := tripsApp()

	first := fullTripPayload()
	second := fullTripPayload()
	second.Name = "Second Trip"
	second.StartDate = "2026-10-01"

	request(t, app, "POST", "/api/trips/full", first)
	request(t, app, "POST", "/api/trips/full", second)

	status, body := request(t, app, "GET", "/api/trips/user/1", nil)
	require.Equal(t, fiber.StatusOK, status)

	var trips []Models.Trip
	require.NoError(t, json.Unmarshal(body, &trips))
	require.Len(t, trips, 2)
	assert.Equal(t, "Singapore Getaway", trips[0].Name)
	assert.Equal(t, "Second Trip", trips[1].Name)
}

func TestRecommendedTripsRequireThumbnail(t *testing.T) {
	setupTestDB(t)

	Models.DB.Create(&Models.Trip{Name: "No Image", UserID: 1})
	Models.DB.Create(&Models.Trip{Name: "Curated", UserID: 1, ThumbnailURL: "https://img.example/x.jpg"})

	status, body := request(t, tripsApp(), "GET", "/api/trips/recommended", nil)
	require.Equal(t, fiber.StatusOK, status)

	var trips []Models.Trip
	require.NoError(t, json.Unmarshal(body, &trips))
	require.Len(t, trips, 1)
	assert.Equal(t, "Curated", trips[0].Name)
}

func TestUpdateActivityWhitelistsFields(t *testing.T) {
	setupTestDB(t)
	app := tripsApp()

	status, body := request(t, app, "POST", "/api/trips/full", fullTripPayload())
	require.Equal(t, fiber.StatusCreated, status)

	var activity Models.Activity
	require.NoError(t, Models.DB.First(&activity).Error)

	status, body = request(t, app, "PUT", fmt.Sprintf("/api/trips/activities/%d", activity.ID), fiber.Map{
		"destination": "Cloud Forest",
		"start_time":  "10:00",
		"end_time":    "12:00",
		"rating":      4.5,
		// An attempt to move the activity to another day must be ignored.
		"day_trip_id": 9999,
	})
	require.Equal(t, fiber.StatusOK, status, string(body))

	var updated Models.Activity
	require.NoError(t, Models.DB.First(&updated, activity.ID).Error)
	assert.Equal(t, "Cloud Forest", updated.Destination)
	assert.Equal(t, "10:00", updated.StartTime)
	assert.Equal(t, 4.5, updated.Rating)
	assert.Equal(t, activity.DayTripID, updated.DayTripID)
}

func TestDeleteTripCascades(t *testing.T) {
	setupTestDB(t)
	app := tripsApp()

	status, body := request(t, app, "POST", "/api/trips/full", fullTripPayload())
	require.Equal(t, fiber.StatusCreated, status)

	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	tripID := int(created["trip_id"].(float64))

	status, _ = request(t, app, "DELETE", fmt.Sprintf("/api/trips/%d", tripID), nil)
	require.Equal(t, fiber.StatusNoContent, status)

	var dayCount, activityCount int64
	Models.DB.Model(&Models.DayTrip{}).Count(&dayCount)
	Models.DB.Model(&Models.Activity{}).Count(&activityCount)
	assert.Zero(t, dayCount)
	assert.Zero(t, activityCount)
}

func TestDeleteDayRemovesItsActivities(t *testing.T) {
	setupTestDB(t)
	app := tripsApp()

	request(t, app, "POST", "/api/trips/full", fullTripPayload())

	var day Models.DayTrip
	require.NoError(t, Models.DB.Where("day_number = ?", 1).First(&day).Error)

	status, _ := request(t, app, "DELETE", fmt.Sprintf("/api/trips/days/%d", day.ID), nil)
	require.Equal(t, fiber.StatusNoContent, status)

	var activityCount int64
	Models.DB.Model(&Models.Activity{}).Where("day_trip_id = ?", day.ID).Count(&activityCount)
	assert.Zero(t, activityCount)

	// The other day's activities survive.
	var total int64
	Models.DB.Model(&Models.Activity{}).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestCreateDayAndActivity(t *testing.T) {
	setupTestDB(t)
	app := tripsApp()

	status, body := request(t, app, "POST", "/api/trips", Models.Trip{UserID: 1, Name: "Empty Trip"})
	require.Equal(t, fiber.StatusCreated, status)

	var trip Models.Trip
	require.NoError(t, json.Unmarshal(body, &trip))

	status, body = request(t, app, "POST", fmt.Sprintf("/api/trips/%d/days", trip.ID), Models.DayTrip{
		DayNumber: 1, Date: "2026-09-01", Destination: "Downtown",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var day Models.DayTrip
	require.NoError(t, json.Unmarshal(body, &day))
	assert.Equal(t, trip.ID, day.TripID)

	status, body = request(t, app, "POST", fmt.Sprintf("/api/trips/days/%d/activities", day.ID), Models.Activity{
		Destination: "City Museum", Type: "Attraction",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var activity Models.Activity
	require.NoError(t, json.Unmarshal(body, &activity))
	assert.Equal(t, day.ID, activity.DayTripID)
}
