package Controllers

import (
	"strconv"

	"Wander/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TripController handles trip-related API endpoints
type TripController struct {
	DB *gorm.DB
}

// NewTripController creates a new TripController
func NewTripController(db *gorm.DB) *TripController {
	return &TripController{DB: db}
}

// GetRecommendedTrips returns all trips that have a thumbnail (i.e. curated
// ones with images), newest first.
func (c *TripController) GetRecommendedTrips(ctx *fiber.Ctx) error {
	var trips []Models.Trip
	result := c.DB.Where("thumbnail_url IS NOT NULL AND thumbnail_url != ''").
		Order("created_at DESC").Find(&trips)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve trips"})
	}
	return ctx.JSON(trips)
}

// GetTrip retrieves a single trip with its days and activities
func (c *TripController) GetTrip(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trip ID"})
	}

	var trip Models.Trip
	result := c.DB.Preload("Days", func(db *gorm.DB) *gorm.DB {
		return db.Order("day_number")
	}).Preload("Days.Activities").First(&trip, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trip not found"})
	}

	return ctx.JSON(trip)
}

// GetUserTrips retrieves all trips for a user, ordered by start date
func (c *TripController) GetUserTrips(ctx *fiber.Ctx) error {
	userID, err := strconv.Atoi(ctx.Params("user_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	trips := []Models.Trip{}
	result := c.DB.Preload("Days", func(db *gorm.DB) *gorm.DB {
		return db.Order("day_number")
	}).Preload("Days.Activities").
		Where("user_id = ?", userID).Order("start_date").Find(&trips)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve trips"})
	}

	return ctx.JSON(trips)
}

// CreateTrip creates a new empty trip
func (c *TripController) CreateTrip(ctx *fiber.Ctx) error {
	var input Models.Trip
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	trip := Models.Trip{
		UserID:    input.UserID,
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if result := c.DB.Create(&trip); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create trip"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(trip)
}

// CreateDay appends a day to a trip
func (c *TripController) CreateDay(ctx *fiber.Ctx) error {
	tripID, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trip ID"})
	}

	var input Models.DayTrip
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	day := Models.DayTrip{
		TripID:      uint(tripID),
		DayNumber:   input.DayNumber,
		Date:        input.Date,
		Destination: input.Destination,
	}
	if result := c.DB.Create(&day); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create day"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(day)
}

// CreateActivity appends an activity to a day
func (c *TripController) CreateActivity(ctx *fiber.Ctx) error {
	dayID, err := strconv.Atoi(ctx.Params("day_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day ID"})
	}

	var activity Models.Activity
	if err := ctx.BodyParser(&activity); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	activity.DayTripID = uint(dayID)

	if result := c.DB.Create(&activity); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create activity"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(activity)
}

// CreateFullTrip inserts a trip with all its days and activities in one
// transaction, so a half-written trip never survives a failure.
func (c *TripController) CreateFullTrip(ctx *fiber.Ctx) error {
	var trip Models.Trip
	if err := ctx.BodyParser(&trip); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&trip).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to create trip: " + err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Trip created successfully",
		"trip_id": trip.ID,
	})
}

// UpdateTrip updates trip-level fields and any provided nested days/activities
func (c *TripController) UpdateTrip(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trip ID"})
	}

	var trip Models.Trip
	if result := c.DB.First(&trip, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trip not found"})
	}

	var input Models.Trip
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.Model(&trip).Updates(Models.Trip{
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})

	for _, day := range input.Days {
		if day.ID == 0 {
			continue
		}
		c.DB.Model(&Models.DayTrip{}).Where("id = ? AND trip_id = ?", day.ID, trip.ID).
			Updates(Models.DayTrip{Date: day.Date, Destination: day.Destination})

		for _, activity := range day.Activities {
			if activity.ID == 0 {
				continue
			}
			c.DB.Model(&Models.Activity{}).Where("id = ?", activity.ID).
				Updates(activityUpdates(activity))
		}
	}

	c.DB.First(&trip, id)
	return ctx.JSON(trip)
}

// UpdateActivity updates a single activity. Only whitelisted fields are
// applied; anything else in the payload is ignored.
func (c *TripController) UpdateActivity(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("activity_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid activity ID"})
	}

	var activity Models.Activity
	if result := c.DB.First(&activity, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Activity not found"})
	}

	var input Models.Activity
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if result := c.DB.Model(&activity).Updates(activityUpdates(input)); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update activity"})
	}

	c.DB.First(&activity, id)
	return ctx.JSON(activity)
}

// activityUpdates maps an activity onto the columns callers may change.
func activityUpdates(a Models.Activity) map[string]interface{} {
	return map[string]interface{}{
		"destination": a.Destination,
		"type":        a.Type,
		"start_time":  a.StartTime,
		"end_time":    a.EndTime,
		"description": a.Description,
		"rating":      a.Rating,
		"address":     a.Address,
		"place_id":    a.PlaceID,
		"thumbnail":   a.Thumbnail,
		"lat":         a.Lat,
		"lng":         a.Lng,
	}
}

// DeleteActivity removes a single activity
func (c *TripController) DeleteActivity(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("activity_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid activity ID"})
	}

	var activity Models.Activity
	if result := c.DB.First(&activity, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Activity not found"})
	}

	c.DB.Delete(&activity)
	return ctx.SendStatus(fiber.StatusNoContent)
}

// DeleteDay removes a day and its activities
func (c *TripController) DeleteDay(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("day_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day ID"})
	}

	var day Models.DayTrip
	if result := c.DB.First(&day, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Day trip not found"})
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("day_trip_id = ?", day.ID).Delete(&Models.Activity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&day).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to delete day trip: " + err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// DeleteTrip removes a trip with all its days and activities
func (c *TripController) DeleteTrip(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trip ID"})
	}

	var trip Models.Trip
	if result := c.DB.First(&trip, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trip not found"})
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		var days []Models.DayTrip
		if err := tx.Where("trip_id = ?", trip.ID).Find(&days).Error; err != nil {
			return err
		}
		for _, day := range days {
			if err := tx.Where("day_trip_id = ?", day.ID).Delete(&Models.Activity{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&Models.DayTrip{}).Error; err != nil {
			return err
		}
		return tx.Delete(&trip).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to delete trip: " + err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
